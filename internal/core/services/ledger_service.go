package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	studentFeeRepo portsrepo.StudentFeeReader
	feeRepo        portsrepo.FeeStructureReader
	schoolRepo     portsrepo.SchoolReader
	repairer       portssvc.DateRepairerSvc
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerDateRepairer enables automatic repair and retry of reads that fail
// on an out-of-range stored date.
func WithLedgerDateRepairer(repairer portssvc.DateRepairerSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.repairer = repairer
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(
	studentFeeRepo portsrepo.StudentFeeReader,
	feeRepo portsrepo.FeeStructureReader,
	schoolRepo portsrepo.SchoolReader,
	options ...LedgerServiceOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		studentFeeRepo: studentFeeRepo,
		feeRepo:        feeRepo,
		schoolRepo:     schoolRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

type studentFeeData struct {
	fees    []domain.FeeStructure
	records []domain.StudentFee
}

// Summary loads the class catalog and the student's records in parallel and
// outer-joins them.
func (s *ledgerService) Summary(ctx context.Context, studentID string) (*domain.StudentLedger, error) {
	student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		s.LogError(ctx, err, "Student lookup failed", slog.String("student_id", studentID))
		return nil, err
	}

	data, err := readWithRepair(ctx, &s.BaseService, s.repairer, "student ledger",
		func(ctx context.Context) (studentFeeData, error) {
			var d studentFeeData
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.fees, err = s.feeRepo.ListFeeStructuresByClass(gctx, student.ClassID)
				return err
			})
			g.Go(func() error {
				var err error
				d.records, err = s.studentFeeRepo.ListStudentFeesByStudent(gctx, studentID)
				return err
			})
			return d, g.Wait()
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to load student ledger",
			slog.String("student_id", studentID),
			slog.String("class_id", student.ClassID))
		return nil, fmt.Errorf("failed to load ledger of student %s: %w", studentID, err)
	}

	ledger := domain.NewStudentLedger(*student, data.fees, data.records)
	s.LogDebug(ctx, "Student ledger loaded",
		slog.String("student_id", studentID),
		slog.Int("entries", len(ledger.Entries)),
		slog.String("outstanding", ledger.Outstanding.String()))
	return &ledger, nil
}

type studentFeeEntryData struct {
	fee    *domain.FeeStructure
	record *domain.StudentFee
}

// GetEntry reads one fee item and the student's record for it in parallel.
// A fee item billed to another class is reported as not found.
func (s *ledgerService) GetEntry(ctx context.Context, studentID, feeID string) (*domain.LedgerEntry, error) {
	student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		s.LogError(ctx, err, "Student lookup failed", slog.String("student_id", studentID))
		return nil, err
	}

	data, err := readWithRepair(ctx, &s.BaseService, s.repairer, "ledger entry",
		func(ctx context.Context) (studentFeeEntryData, error) {
			var d studentFeeEntryData
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.fee, err = s.feeRepo.FindFeeStructureByID(gctx, feeID)
				return err
			})
			g.Go(func() error {
				rec, err := s.studentFeeRepo.FindStudentFee(gctx, studentID, feeID)
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil
				}
				d.record = rec
				return err
			})
			return d, g.Wait()
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entry",
			slog.String("student_id", studentID),
			slog.String("fee_id", feeID))
		return nil, fmt.Errorf("failed to load fee %s of student %s: %w", feeID, studentID, err)
	}
	if data.fee.ClassID != student.ClassID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s is not billed to student %s", feeID, studentID))
	}

	var records []domain.StudentFee
	if data.record != nil {
		records = append(records, *data.record)
	}
	entry := domain.JoinLedger(studentID, []domain.FeeStructure{*data.fee}, records)[0]
	return &entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, studentID string) ([]domain.LedgerEntry, error) {
	ledger, err := s.Summary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return ledger.Entries, nil
}

// PendingFeesFor keeps the entries still unpaid or partial, including virtual
// entries for fee items the student has never paid towards.
func (s *ledgerService) PendingFeesFor(ctx context.Context, studentID string) ([]domain.LedgerEntry, error) {
	ledger, err := s.Summary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return domain.PendingEntries(ledger.Entries), nil
}

func (s *ledgerService) TotalOwed(ctx context.Context, studentID string) (decimal.Decimal, error) {
	ledger, err := s.Summary(ctx, studentID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.TotalOwed, nil
}

func (s *ledgerService) TotalPaid(ctx context.Context, studentID string) (decimal.Decimal, error) {
	ledger, err := s.Summary(ctx, studentID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.TotalPaid, nil
}

// Outstanding is TotalOwed minus TotalPaid, floored at zero.
func (s *ledgerService) Outstanding(ctx context.Context, studentID string) (decimal.Decimal, error) {
	ledger, err := s.Summary(ctx, studentID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Outstanding, nil
}
