package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// statisticsService implements the StatisticsSvc interface
type statisticsService struct {
	BaseService
	feeRepo        portsrepo.FeeStructureReader
	studentFeeRepo portsrepo.StudentFeeReader
	schoolRepo     portsrepo.SchoolReader
	repairer       portssvc.DateRepairerSvc
}

// StatisticsServiceOption is a functional option for configuring the statistics service
type StatisticsServiceOption func(*statisticsService)

// WithStatisticsDateRepairer enables automatic repair and retry of reads that
// fail on an out-of-range stored date.
func WithStatisticsDateRepairer(repairer portssvc.DateRepairerSvc) StatisticsServiceOption {
	return func(s *statisticsService) {
		s.repairer = repairer
	}
}

// NewStatisticsService creates a new statistics service with the provided options
func NewStatisticsService(
	feeRepo portsrepo.FeeStructureReader,
	studentFeeRepo portsrepo.StudentFeeReader,
	schoolRepo portsrepo.SchoolReader,
	options ...StatisticsServiceOption,
) portssvc.StatisticsSvc {
	svc := &statisticsService{
		feeRepo:        feeRepo,
		studentFeeRepo: studentFeeRepo,
		schoolRepo:     schoolRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.StatisticsSvc = (*statisticsService)(nil)

type classFeeData struct {
	students []domain.Student
	fees     []domain.FeeStructure
	records  []domain.StudentFee
}

func (s *statisticsService) Snapshot(ctx context.Context) (*domain.FeeSnapshot, error) {
	data, err := readWithRepair(ctx, &s.BaseService, s.repairer, "fee snapshot",
		func(ctx context.Context) (studentFeeData, error) {
			var d studentFeeData
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.fees, err = s.feeRepo.ListFeeStructures(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				d.records, err = s.studentFeeRepo.ListStudentFees(gctx)
				return err
			})
			return d, g.Wait()
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to load fee snapshot data")
		return nil, fmt.Errorf("failed to compute fee snapshot: %w", err)
	}

	snapshot := domain.ComputeSnapshot(data.fees, data.records)
	s.LogInfo(ctx, "Fee snapshot computed",
		slog.String("total_due", snapshot.TotalDue.String()),
		slog.String("total_paid", snapshot.TotalPaid.String()),
		slog.Int("pending_students", snapshot.PendingStudentCount))
	return &snapshot, nil
}

func (s *statisticsService) StudentBalance(ctx context.Context, studentID string) (*domain.StudentBalance, error) {
	student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		s.LogError(ctx, err, "Student lookup failed", slog.String("student_id", studentID))
		return nil, err
	}

	data, err := readWithRepair(ctx, &s.BaseService, s.repairer, "student balance",
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
		s.LogError(ctx, err, "Failed to load student balance data", slog.String("student_id", studentID))
		return nil, fmt.Errorf("failed to compute balance of student %s: %w", studentID, err)
	}

	balance := domain.NewStudentBalance(*student, data.fees, data.records)
	return &balance, nil
}

// ClassBalances returns one balance per enrolled student, including students
// with no payments at all.
func (s *statisticsService) ClassBalances(ctx context.Context, classID string) ([]domain.StudentBalance, error) {
	if _, err := s.schoolRepo.FindClassByID(ctx, classID); err != nil {
		s.LogError(ctx, err, "Class lookup failed", slog.String("class_id", classID))
		return nil, err
	}

	data, err := readWithRepair(ctx, &s.BaseService, s.repairer, "class balances",
		func(ctx context.Context) (classFeeData, error) {
			var d classFeeData
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.students, err = s.schoolRepo.ListStudentsByClass(gctx, classID)
				return err
			})
			g.Go(func() error {
				var err error
				d.fees, err = s.feeRepo.ListFeeStructuresByClass(gctx, classID)
				return err
			})
			g.Go(func() error {
				var err error
				d.records, err = s.studentFeeRepo.ListStudentFeesByClass(gctx, classID)
				return err
			})
			return d, g.Wait()
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to load class balance data", slog.String("class_id", classID))
		return nil, fmt.Errorf("failed to compute balances of class %s: %w", classID, err)
	}

	byStudent := make(map[string][]domain.StudentFee, len(data.students))
	for _, r := range data.records {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	balances := make([]domain.StudentBalance, 0, len(data.students))
	for _, st := range data.students {
		balances = append(balances, domain.NewStudentBalance(st, data.fees, byStudent[st.StudentID]))
	}

	s.LogInfo(ctx, "Class balances computed",
		slog.String("class_id", classID),
		slog.Int("students", len(balances)))
	return balances, nil
}
