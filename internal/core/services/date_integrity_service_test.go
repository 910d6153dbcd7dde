package services_test

import (
	"context"
	"testing"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DateIntegrityServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDateRepairRepository
	service  portssvc.DateIntegritySvcFacade
}

func (suite *DateIntegrityServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDateRepairRepository)
	suite.service = services.NewDateIntegrityService(suite.mockRepo)
}

func dueDate(id, value string) domain.RawDateValue {
	return domain.RawDateValue{Table: domain.TableFeeStructures, Field: domain.FieldDueDate, RecordID: id, Value: value}
}

func paymentDate(id, value string) domain.RawDateValue {
	return domain.RawDateValue{Table: domain.TableStudentFees, Field: domain.FieldPaymentDate, RecordID: id, Value: value}
}

func (suite *DateIntegrityServiceTestSuite) TestRepair_ClampsOverflowedDays() {
	ctx := context.Background()
	july := dueDate("fee-1", "2025-07-32")
	june := paymentDate("sf-1", "2025-06-31")
	valid := dueDate("fee-2", "2025-06-30")

	suite.mockRepo.On("RewriteDate", ctx, july, "2025-07-31").Return(true, nil).Once()
	suite.mockRepo.On("RewriteDate", ctx, june, "2025-06-30").Return(true, nil).Once()

	count, err := suite.service.Repair(ctx, []domain.RawDateValue{july, june, valid})

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "RewriteDate", ctx, valid, mock.Anything)
}

func (suite *DateIntegrityServiceTestSuite) TestRepair_WellFormedDatesCountZero() {
	ctx := context.Background()

	count, err := suite.service.Repair(ctx, []domain.RawDateValue{
		dueDate("fee-1", "2025-07-31"),
		paymentDate("sf-1", "2024-02-29"),
		dueDate("fee-2", "not-a-date"),
	})

	suite.Require().NoError(err)
	suite.Zero(count)
	suite.mockRepo.AssertNotCalled(suite.T(), "RewriteDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DateIntegrityServiceTestSuite) TestRepair_PartialFailureReportsActualCount() {
	ctx := context.Background()
	ok := dueDate("fee-1", "2025-07-32")
	broken := dueDate("fee-2", "2025-09-31")

	suite.mockRepo.On("RewriteDate", ctx, ok, "2025-07-31").Return(true, nil).Once()
	suite.mockRepo.On("RewriteDate", ctx, broken, "2025-09-30").Return(false, assert.AnError).Once()

	count, err := suite.service.Repair(ctx, []domain.RawDateValue{ok, broken})

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Equal(1, count)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DateIntegrityServiceTestSuite) TestRepair_StaleRowIsNotCounted() {
	ctx := context.Background()
	v := dueDate("fee-1", "2025-04-31")

	suite.mockRepo.On("RewriteDate", ctx, v, "2025-04-30").Return(false, nil).Once()

	count, err := suite.service.Repair(ctx, []domain.RawDateValue{v})

	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *DateIntegrityServiceTestSuite) TestRepair_UnknownColumn() {
	ctx := context.Background()

	count, err := suite.service.Repair(ctx, []domain.RawDateValue{
		{Table: "students", Field: "birth_date", RecordID: "s-1", Value: "2015-06-31"},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(count)
}

func (suite *DateIntegrityServiceTestSuite) TestRepairAll() {
	ctx := context.Background()
	values := []domain.RawDateValue{
		dueDate("fee-1", "2025-07-32"),
		dueDate("fee-2", "2025-08-15"),
		paymentDate("sf-1", "2025-06-31"),
	}

	suite.mockRepo.On("ListRawDates", ctx).Return(values, nil).Once()
	suite.mockRepo.On("RewriteDate", ctx, values[0], "2025-07-31").Return(true, nil).Once()
	suite.mockRepo.On("RewriteDate", ctx, values[2], "2025-06-30").Return(true, nil).Once()

	result, err := suite.service.RepairAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(&domain.DateRepairResult{Scanned: 3, Repaired: 2}, result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DateIntegrityServiceTestSuite) TestRepairAll_ListError() {
	ctx := context.Background()
	suite.mockRepo.On("ListRawDates", ctx).Return(nil, assert.AnError).Once()

	result, err := suite.service.RepairAll(ctx)

	suite.Nil(result)
	suite.ErrorIs(err, assert.AnError)
}

func TestDateIntegrityService(t *testing.T) {
	suite.Run(t, new(DateIntegrityServiceTestSuite))
}
