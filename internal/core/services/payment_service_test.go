package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/core/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockStudentFeeRepo *MockStudentFeeRepository
	mockSchoolRepo     *MockSchoolRepository
	mockCatalog        *MockFeeCatalog
	now                time.Time
	service            portssvc.PaymentSvc
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockStudentFeeRepo = new(MockStudentFeeRepository)
	suite.mockSchoolRepo = new(MockSchoolRepository)
	suite.mockCatalog = new(MockFeeCatalog)
	suite.now = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewPaymentService(
		suite.mockStudentFeeRepo,
		suite.mockSchoolRepo,
		suite.mockCatalog,
		services.WithPaymentClock(func() time.Time { return suite.now }),
		services.WithPaymentIDGenerator(func() string { return "sf-new" }),
	)
}

func (suite *PaymentServiceTestSuite) expectStudentAndFee(ctx context.Context) *domain.FeeStructure {
	fee := &domain.FeeStructure{
		FeeID:   "fee-1",
		ClassID: "class-1",
		FeeType: "Tuition",
		Amount:  decimal.NewFromInt(5000),
		DueDate: calendar.Date{Year: 2025, Month: time.June, Day: 30},
	}
	suite.mockSchoolRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ClassID: "class-1"}, nil).Once()
	suite.mockCatalog.On("GetFeeStructure", ctx, "fee-1").Return(fee, nil).Once()
	return fee
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_Success() {
	ctx := context.Background()
	suite.expectStudentAndFee(ctx)
	paid := calendar.Date{Year: 2025, Month: time.June, Day: 1}
	returned := &domain.StudentFee{
		StudentFeeID: "sf-new",
		StudentID:    "student-1",
		FeeID:        "fee-1",
		AmountPaid:   decimal.NewFromInt(2000),
		PaymentDate:  &paid,
		Status:       domain.StatusPartial,
	}

	suite.mockStudentFeeRepo.On("ApplyDelta", ctx, domain.PaymentDelta{
		StudentFeeID: "sf-new",
		StudentID:    "student-1",
		FeeID:        "fee-1",
		Amount:       decimal.NewFromInt(2000),
		PaymentDate:  paid,
		OwedAmount:   decimal.NewFromInt(5000),
		UserID:       "clerk",
		At:           suite.now,
	}).Return(returned, nil).Once()

	rec, err := suite.service.ApplyPayment(ctx, "student-1", dto.ApplyPaymentRequest{
		FeeID: "fee-1", Amount: decimal.NewFromInt(2000), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.Require().NoError(err)
	suite.Equal(returned, rec)
	suite.mockStudentFeeRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ValidationErrors() {
	ctx := context.Background()
	cases := map[string]dto.ApplyPaymentRequest{
		"zero amount":      {FeeID: "fee-1", Amount: decimal.Zero, PaymentDate: "2025-06-01"},
		"negative amount":  {FeeID: "fee-1", Amount: decimal.NewFromInt(-10), PaymentDate: "2025-06-01"},
		"sub-cent amount":  {FeeID: "fee-1", Amount: decimal.RequireFromString("4999.996"), PaymentDate: "2025-06-01"},
		"tiny amount":      {FeeID: "fee-1", Amount: decimal.RequireFromString("0.004"), PaymentDate: "2025-06-01"},
		"overflowed date":  {FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-31"},
		"unparseable date": {FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "yesterday"},
		"missing fee item": {FeeID: " ", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01"},
	}

	for name, req := range cases {
		suite.Run(name, func() {
			rec, err := suite.service.ApplyPayment(ctx, "student-1", req, "clerk")
			suite.Nil(rec)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockSchoolRepo.AssertNotCalled(suite.T(), "FindStudentByID", mock.Anything, mock.Anything)
	suite.mockStudentFeeRepo.AssertNotCalled(suite.T(), "ApplyDelta", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_UnknownFeeItem() {
	ctx := context.Background()
	suite.mockSchoolRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ClassID: "class-1"}, nil).Once()
	suite.mockCatalog.On("GetFeeStructure", ctx, "fee-x").Return(nil, apperrors.NewNotFoundError("fee structure fee-x not found")).Once()

	rec, err := suite.service.ApplyPayment(ctx, "student-1", dto.ApplyPaymentRequest{
		FeeID: "fee-x", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockStudentFeeRepo.AssertNotCalled(suite.T(), "ApplyDelta", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_UnknownStudent() {
	ctx := context.Background()
	suite.mockSchoolRepo.On("FindStudentByID", ctx, "ghost").Return(nil, apperrors.NewNotFoundError("student ghost not found")).Once()

	rec, err := suite.service.ApplyPayment(ctx, "ghost", dto.ApplyPaymentRequest{
		FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_FeeOfAnotherClass() {
	ctx := context.Background()
	suite.mockSchoolRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ClassID: "class-2"}, nil).Once()
	suite.mockCatalog.On("GetFeeStructure", ctx, "fee-1").
		Return(&domain.FeeStructure{FeeID: "fee-1", ClassID: "class-1", Amount: decimal.NewFromInt(100)}, nil).Once()

	rec, err := suite.service.ApplyPayment(ctx, "student-1", dto.ApplyPaymentRequest{
		FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_UnknownOutcomeIsPassedThrough() {
	ctx := context.Background()
	suite.expectStudentAndFee(ctx)
	suite.mockStudentFeeRepo.On("ApplyDelta", ctx, mock.AnythingOfType("domain.PaymentDelta")).
		Return(nil, apperrors.NewAppError(apperrors.ErrUnknownOutcome, "timeout", context.DeadlineExceeded)).Once()

	rec, err := suite.service.ApplyPayment(ctx, "student-1", dto.ApplyPaymentRequest{
		FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrUnknownOutcome)
	suite.mockStudentFeeRepo.AssertNumberOfCalls(suite.T(), "ApplyDelta", 1)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_WriteFailureIsNotRetried() {
	ctx := context.Background()
	suite.expectStudentAndFee(ctx)
	suite.mockStudentFeeRepo.On("ApplyDelta", ctx, mock.AnythingOfType("domain.PaymentDelta")).
		Return(nil, apperrors.NewPersistenceError("write failed", assert.AnError)).Once()

	_, err := suite.service.ApplyPayment(ctx, "student-1", dto.ApplyPaymentRequest{
		FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.mockStudentFeeRepo.AssertNumberOfCalls(suite.T(), "ApplyDelta", 1)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_InconsistentRecordIsRejected() {
	ctx := context.Background()
	suite.expectStudentAndFee(ctx)
	suite.mockStudentFeeRepo.On("ApplyDelta", ctx, mock.AnythingOfType("domain.PaymentDelta")).
		Return(&domain.StudentFee{
			StudentFeeID: "sf-new",
			AmountPaid:   decimal.NewFromInt(10),
			Status:       domain.StatusPaid,
		}, nil).Once()

	rec, err := suite.service.ApplyPayment(ctx, "student-1", dto.ApplyPaymentRequest{
		FeeID: "fee-1", Amount: decimal.NewFromInt(10), PaymentDate: "2025-06-01",
	}, "clerk")

	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrPersistence)
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
