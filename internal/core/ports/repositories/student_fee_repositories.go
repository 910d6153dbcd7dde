package repositories

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
)

// StudentFeeReader defines read operations for ledger entries.
type StudentFeeReader interface {
	// FindStudentFee retrieves the entry for a (student, fee item) pair, or apperrors.ErrNotFound.
	FindStudentFee(ctx context.Context, studentID, feeID string) (*domain.StudentFee, error)

	// ListStudentFeesByStudent retrieves every entry of one student.
	ListStudentFeesByStudent(ctx context.Context, studentID string) ([]domain.StudentFee, error)

	// ListStudentFeesByClass retrieves every entry of every student enrolled in a class.
	ListStudentFeesByClass(ctx context.Context, classID string) ([]domain.StudentFee, error)

	// ListStudentFees retrieves every entry.
	ListStudentFees(ctx context.Context) ([]domain.StudentFee, error)

	// CountStudentFeesByFee counts the entries referencing a fee item.
	CountStudentFeesByFee(ctx context.Context, feeID string) (int, error)
}

// StudentFeeWriter defines the only mutation the ledger supports.
type StudentFeeWriter interface {
	// ApplyDelta atomically adds delta.Amount to the (student, fee item) entry,
	// creating it when absent, and stores the status derived from the new total
	// in the same step. Concurrent calls on one entry never lose an update.
	// A write interrupted by timeout or cancellation returns apperrors.ErrUnknownOutcome.
	ApplyDelta(ctx context.Context, delta domain.PaymentDelta) (*domain.StudentFee, error)
}

// StudentFeeRepositoryFacade combines all ledger repository interfaces.
type StudentFeeRepositoryFacade interface {
	StudentFeeReader
	StudentFeeWriter
}
