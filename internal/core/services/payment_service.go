package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
)

// paymentService implements the PaymentSvc interface
type paymentService struct {
	BaseService
	studentFeeRepo portsrepo.StudentFeeWriter
	schoolRepo     portsrepo.SchoolReader
	catalog        portssvc.FeeStructureReaderSvc
	now            func() time.Time
	newID          func() string
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentClock overrides the time source used for audit fields.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.now = now
	}
}

// WithPaymentIDGenerator overrides how ids of new ledger entries are generated.
func WithPaymentIDGenerator(newID func() string) PaymentServiceOption {
	return func(s *paymentService) {
		s.newID = newID
	}
}

// NewPaymentService creates a new payment service with the provided options
func NewPaymentService(
	studentFeeRepo portsrepo.StudentFeeWriter,
	schoolRepo portsrepo.SchoolReader,
	catalog portssvc.FeeStructureReaderSvc,
	options ...PaymentServiceOption,
) portssvc.PaymentSvc {
	svc := &paymentService{
		studentFeeRepo: studentFeeRepo,
		schoolRepo:     schoolRepo,
		catalog:        catalog,
		now:            time.Now,
		newID:          uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

// ApplyPayment validates the request, resolves the student and fee item, and
// hands the increment to the repository as one atomic delta. The returned
// entry is checked against the ledger invariants before it is reported.
func (s *paymentService) ApplyPayment(ctx context.Context, studentID string, req dto.ApplyPaymentRequest, userID string) (*domain.StudentFee, error) {
	feeID := strings.TrimSpace(req.FeeID)
	if feeID == "" {
		return nil, apperrors.NewValidationError("fee item is required")
	}
	if !req.Amount.IsPositive() {
		err := apperrors.NewValidationError("payment amount must be greater than zero")
		s.LogError(ctx, err, "Invalid payment amount",
			slog.String("student_id", studentID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}
	if !domain.HasMoneyScale(req.Amount) {
		err := apperrors.NewValidationError(fmt.Sprintf("payment amount may have at most %d decimal places", domain.MoneyScale))
		s.LogError(ctx, err, "Invalid payment amount",
			slog.String("student_id", studentID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}
	paymentDate, ok := calendar.Parse(req.PaymentDate)
	if !ok {
		err := apperrors.NewValidationError(fmt.Sprintf("payment date %q is not a valid calendar date (YYYY-MM-DD)", req.PaymentDate))
		s.LogError(ctx, err, "Invalid payment date", slog.String("student_id", studentID))
		return nil, err
	}

	student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		s.LogError(ctx, err, "Student lookup failed", slog.String("student_id", studentID))
		return nil, err
	}
	fee, err := s.catalog.GetFeeStructure(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if fee.ClassID != student.ClassID {
		err := apperrors.NewValidationError(fmt.Sprintf("fee item %s does not belong to class %s of student %s", fee.FeeID, student.ClassID, studentID))
		s.LogError(ctx, err, "Fee item belongs to another class",
			slog.String("student_id", studentID),
			slog.String("fee_id", fee.FeeID))
		return nil, err
	}

	delta := domain.PaymentDelta{
		StudentFeeID: s.newID(),
		StudentID:    studentID,
		FeeID:        fee.FeeID,
		Amount:       req.Amount,
		PaymentDate:  paymentDate,
		OwedAmount:   fee.Amount,
		UserID:       userID,
		At:           s.now(),
	}
	rec, err := s.studentFeeRepo.ApplyDelta(ctx, delta)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownOutcome) {
			s.LogWarn(ctx, "Payment write outcome unknown; ledger must be re-read before any retry",
				slog.String("student_id", studentID),
				slog.String("fee_id", fee.FeeID),
				slog.String("amount", req.Amount.String()),
				slog.String("error", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to apply payment",
			slog.String("student_id", studentID),
			slog.String("fee_id", fee.FeeID))
		return nil, err
	}

	if err := rec.CheckConsistency(fee.Amount); err != nil {
		s.LogError(ctx, err, "Ledger entry inconsistent after payment",
			slog.String("student_fee_id", rec.StudentFeeID))
		return nil, apperrors.NewPersistenceError("ledger entry inconsistent after payment", err)
	}

	s.LogInfo(ctx, "Payment applied",
		slog.String("student_fee_id", rec.StudentFeeID),
		slog.String("student_id", studentID),
		slog.String("fee_id", fee.FeeID),
		slog.String("amount", req.Amount.String()),
		slog.String("amount_paid", rec.AmountPaid.String()),
		slog.String("status", string(rec.Status)))
	return rec, nil
}
