package services_test

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock FeeStructureRepository ---
type MockFeeStructureRepository struct {
	mock.Mock
}

func (m *MockFeeStructureRepository) FindFeeStructureByID(ctx context.Context, feeID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) ListFeeStructuresByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) ListFeeStructures(ctx context.Context) ([]domain.FeeStructure, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeStructureRepository) UpdateFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeStructureRepository) DeleteFeeStructure(ctx context.Context, feeID string) error {
	args := m.Called(ctx, feeID)
	return args.Error(0)
}

// --- Mock StudentFeeRepository ---
type MockStudentFeeRepository struct {
	mock.Mock
}

func (m *MockStudentFeeRepository) FindStudentFee(ctx context.Context, studentID, feeID string) (*domain.StudentFee, error) {
	args := m.Called(ctx, studentID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) ListStudentFeesByStudent(ctx context.Context, studentID string) ([]domain.StudentFee, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) ListStudentFeesByClass(ctx context.Context, classID string) ([]domain.StudentFee, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) ListStudentFees(ctx context.Context) ([]domain.StudentFee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) CountStudentFeesByFee(ctx context.Context, feeID string) (int, error) {
	args := m.Called(ctx, feeID)
	return args.Int(0), args.Error(1)
}

func (m *MockStudentFeeRepository) ApplyDelta(ctx context.Context, delta domain.PaymentDelta) (*domain.StudentFee, error) {
	args := m.Called(ctx, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFee), args.Error(1)
}

// --- Mock SchoolRepository ---
type MockSchoolRepository struct {
	mock.Mock
}

func (m *MockSchoolRepository) FindClassByID(ctx context.Context, classID string) (*domain.Class, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Class), args.Error(1)
}

func (m *MockSchoolRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockSchoolRepository) ListStudentsByClass(ctx context.Context, classID string) ([]domain.Student, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

// --- Mock DateRepairRepository ---
type MockDateRepairRepository struct {
	mock.Mock
}

func (m *MockDateRepairRepository) ListRawDates(ctx context.Context) ([]domain.RawDateValue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawDateValue), args.Error(1)
}

func (m *MockDateRepairRepository) RewriteDate(ctx context.Context, value domain.RawDateValue, repaired string) (bool, error) {
	args := m.Called(ctx, value, repaired)
	return args.Bool(0), args.Error(1)
}

// --- Mock DateRepairer (service) ---
type MockDateRepairer struct {
	mock.Mock
}

func (m *MockDateRepairer) RepairAll(ctx context.Context) (*domain.DateRepairResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DateRepairResult), args.Error(1)
}

// --- Mock FeeStructure catalog (service) ---
type MockFeeCatalog struct {
	mock.Mock
}

func (m *MockFeeCatalog) ListByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeCatalog) ListAll(ctx context.Context) ([]domain.FeeStructure, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeCatalog) GetFeeStructure(ctx context.Context, feeID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}
