package services

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/dto"
)

// PaymentSvc applies payments to ledger entries.
type PaymentSvc interface {
	// ApplyPayment adds req.Amount to the student's entry for req.FeeID and
	// returns the updated entry. apperrors.ErrUnknownOutcome means the write
	// may have been applied; re-read the ledger before retrying.
	ApplyPayment(ctx context.Context, studentID string, req dto.ApplyPaymentRequest, userID string) (*domain.StudentFee, error)
}
