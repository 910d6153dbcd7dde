package services

import (
	"context"
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

// feeStructureService implements the FeeStructureSvcFacade interface
type feeStructureService struct {
	BaseService
	feeRepo        portsrepo.FeeStructureRepositoryFacade
	studentFeeRepo portsrepo.StudentFeeReader
	schoolRepo     portsrepo.SchoolReader
	repairer       portssvc.DateRepairerSvc
	now            func() time.Time
}

// FeeStructureServiceOption is a functional option for configuring the fee structure service
type FeeStructureServiceOption func(*feeStructureService)

// WithFeeStructureDateRepairer enables automatic repair and retry of reads
// that fail on an out-of-range stored date.
func WithFeeStructureDateRepairer(repairer portssvc.DateRepairerSvc) FeeStructureServiceOption {
	return func(s *feeStructureService) {
		s.repairer = repairer
	}
}

// WithFeeStructureClock overrides the time source used for audit fields.
func WithFeeStructureClock(now func() time.Time) FeeStructureServiceOption {
	return func(s *feeStructureService) {
		s.now = now
	}
}

// NewFeeStructureService creates a new fee structure service with the provided options
func NewFeeStructureService(
	feeRepo portsrepo.FeeStructureRepositoryFacade,
	studentFeeRepo portsrepo.StudentFeeReader,
	schoolRepo portsrepo.SchoolReader,
	options ...FeeStructureServiceOption,
) portssvc.FeeStructureSvcFacade {
	svc := &feeStructureService{
		feeRepo:        feeRepo,
		studentFeeRepo: studentFeeRepo,
		schoolRepo:     schoolRepo,
		now:            time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.FeeStructureSvcFacade = (*feeStructureService)(nil)

func (s *feeStructureService) ListByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error) {
	fees, err := readWithRepair(ctx, &s.BaseService, s.repairer, "fee structures by class",
		func(ctx context.Context) ([]domain.FeeStructure, error) {
			return s.feeRepo.ListFeeStructuresByClass(ctx, classID)
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee structures", slog.String("class_id", classID))
		return nil, fmt.Errorf("failed to list fee structures of class %s: %w", classID, err)
	}
	if fees == nil {
		fees = []domain.FeeStructure{}
	}
	return fees, nil
}

func (s *feeStructureService) ListAll(ctx context.Context) ([]domain.FeeStructure, error) {
	fees, err := readWithRepair(ctx, &s.BaseService, s.repairer, "all fee structures", s.feeRepo.ListFeeStructures)
	if err != nil {
		s.LogError(ctx, err, "Failed to list all fee structures")
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}
	if fees == nil {
		fees = []domain.FeeStructure{}
	}
	return fees, nil
}

func (s *feeStructureService) GetFeeStructure(ctx context.Context, feeID string) (*domain.FeeStructure, error) {
	fee, err := readWithRepair(ctx, &s.BaseService, s.repairer, "fee structure",
		func(ctx context.Context) (*domain.FeeStructure, error) {
			return s.feeRepo.FindFeeStructureByID(ctx, feeID)
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to get fee structure", slog.String("fee_id", feeID))
		return nil, err
	}
	return fee, nil
}

func (s *feeStructureService) CreateFeeStructure(ctx context.Context, classID string, req dto.CreateFeeStructureRequest, userID string) (*domain.FeeStructure, error) {
	dueDate, ok := calendar.Parse(req.DueDate)
	if !ok {
		err := apperrors.NewValidationError(fmt.Sprintf("due date %q is not a valid calendar date (YYYY-MM-DD)", req.DueDate))
		s.LogError(ctx, err, "Invalid due date", slog.String("class_id", classID))
		return nil, err
	}

	fee := domain.FeeStructure{
		FeeID:       uuid.NewString(),
		ClassID:     classID,
		FeeType:     strings.TrimSpace(req.FeeType),
		Amount:      req.Amount,
		DueDate:     dueDate,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := fee.Validate(); err != nil {
		s.LogError(ctx, err, "Fee structure failed validation", slog.String("class_id", classID))
		return nil, err
	}

	if _, err := s.schoolRepo.FindClassByID(ctx, classID); err != nil {
		s.LogError(ctx, err, "Class lookup failed", slog.String("class_id", classID))
		return nil, err
	}

	if err := s.feeRepo.SaveFeeStructure(ctx, fee); err != nil {
		s.LogError(ctx, err, "Failed to save fee structure",
			slog.String("fee_id", fee.FeeID),
			slog.String("class_id", classID))
		return nil, err
	}

	s.LogInfo(ctx, "Fee structure created",
		slog.String("fee_id", fee.FeeID),
		slog.String("class_id", classID),
		slog.String("fee_type", fee.FeeType),
		slog.String("amount", fee.Amount.String()))
	return &fee, nil
}

func (s *feeStructureService) UpdateFeeStructure(ctx context.Context, feeID string, req dto.UpdateFeeStructureRequest, userID string) (*domain.FeeStructure, error) {
	update := domain.FeeStructureUpdate{
		FeeType:     req.FeeType,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.DueDate != nil {
		dueDate, ok := calendar.Parse(*req.DueDate)
		if !ok {
			err := apperrors.NewValidationError(fmt.Sprintf("due date %q is not a valid calendar date (YYYY-MM-DD)", *req.DueDate))
			s.LogError(ctx, err, "Invalid due date", slog.String("fee_id", feeID))
			return nil, err
		}
		update.DueDate = &dueDate
	}

	existing, err := s.GetFeeStructure(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return existing, nil
	}

	updated := update.Apply(*existing)
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = userID
	if err := updated.Validate(); err != nil {
		s.LogError(ctx, err, "Fee structure update failed validation", slog.String("fee_id", feeID))
		return nil, err
	}

	if err := s.feeRepo.UpdateFeeStructure(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update fee structure", slog.String("fee_id", feeID))
		return nil, err
	}

	s.LogInfo(ctx, "Fee structure updated", slog.String("fee_id", feeID))
	return &updated, nil
}

// DeleteFeeStructure refuses to delete an item that any ledger entry
// references. The repository enforces the same guard atomically; the count
// here gives callers a precise message in the common case.
func (s *feeStructureService) DeleteFeeStructure(ctx context.Context, feeID string, userID string) error {
	count, err := s.studentFeeRepo.CountStudentFeesByFee(ctx, feeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count student fees for fee structure", slog.String("fee_id", feeID))
		return err
	}
	if count > 0 {
		err := apperrors.NewBlockedError(fmt.Sprintf("fee structure %s has %d student fee record(s); remove them first", feeID, count))
		s.LogInfo(ctx, "Fee structure deletion blocked",
			slog.String("fee_id", feeID),
			slog.Int("student_fee_count", count))
		return err
	}

	if err := s.feeRepo.DeleteFeeStructure(ctx, feeID); err != nil {
		s.LogError(ctx, err, "Failed to delete fee structure", slog.String("fee_id", feeID))
		return err
	}

	s.LogInfo(ctx, "Fee structure deleted",
		slog.String("fee_id", feeID),
		slog.String("user_id", userID))
	return nil
}
