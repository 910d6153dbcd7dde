package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/core/services"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockStudentFeeRepo *MockStudentFeeRepository
	mockFeeRepo        *MockFeeStructureRepository
	mockSchoolRepo     *MockSchoolRepository
	mockRepairer       *MockDateRepairer
	service            portssvc.LedgerSvcFacade
	fees               []domain.FeeStructure
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockStudentFeeRepo = new(MockStudentFeeRepository)
	suite.mockFeeRepo = new(MockFeeStructureRepository)
	suite.mockSchoolRepo = new(MockSchoolRepository)
	suite.mockRepairer = new(MockDateRepairer)
	suite.service = services.NewLedgerService(
		suite.mockStudentFeeRepo,
		suite.mockFeeRepo,
		suite.mockSchoolRepo,
		services.WithLedgerDateRepairer(suite.mockRepairer),
	)
	suite.fees = []domain.FeeStructure{
		{FeeID: "fee-tuition", ClassID: "class-1", FeeType: "Tuition", Amount: decimal.NewFromInt(5000),
			DueDate: calendar.Date{Year: 2025, Month: time.June, Day: 30}},
		{FeeID: "fee-transport", ClassID: "class-1", FeeType: "Transport", Amount: decimal.NewFromInt(1200),
			DueDate: calendar.Date{Year: 2025, Month: time.July, Day: 15}},
		{FeeID: "fee-library", ClassID: "class-1", FeeType: "Library", Amount: decimal.NewFromInt(300),
			DueDate: calendar.Date{Year: 2025, Month: time.August, Day: 1}},
	}
	suite.mockSchoolRepo.On("FindStudentByID", mock.Anything, "student-1").
		Return(&domain.Student{StudentID: "student-1", ClassID: "class-1", Name: "Asha"}, nil).Maybe()
}

func (suite *LedgerServiceTestSuite) records() []domain.StudentFee {
	paid := calendar.Date{Year: 2025, Month: time.June, Day: 1}
	return []domain.StudentFee{
		{StudentFeeID: "sf-1", StudentID: "student-1", FeeID: "fee-tuition",
			AmountPaid: decimal.NewFromInt(2000), PaymentDate: &paid, Status: domain.StatusPartial},
		{StudentFeeID: "sf-2", StudentID: "student-1", FeeID: "fee-transport",
			AmountPaid: decimal.NewFromInt(1200), PaymentDate: &paid, Status: domain.StatusPaid},
	}
}

func (suite *LedgerServiceTestSuite) expectReads() {
	suite.mockFeeRepo.On("ListFeeStructuresByClass", mock.Anything, "class-1").Return(suite.fees, nil).Once()
	suite.mockStudentFeeRepo.On("ListStudentFeesByStudent", mock.Anything, "student-1").Return(suite.records(), nil).Once()
}

func (suite *LedgerServiceTestSuite) TestSummary_JoinsCatalogAndRecords() {
	suite.expectReads()

	ledger, err := suite.service.Summary(context.Background(), "student-1")

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 3)
	suite.Equal(domain.StatusPartial, ledger.Entries[0].Status)
	suite.Equal(domain.StatusPaid, ledger.Entries[1].Status)
	suite.Equal(domain.StatusUnpaid, ledger.Entries[2].Status)
	suite.True(ledger.Entries[2].Record.IsVirtual())
	suite.True(decimal.NewFromInt(6500).Equal(ledger.TotalOwed))
	suite.True(decimal.NewFromInt(3200).Equal(ledger.TotalPaid))
	suite.True(decimal.NewFromInt(3300).Equal(ledger.Outstanding))
}

func (suite *LedgerServiceTestSuite) TestPendingFeesFor_IncludesVirtualEntries() {
	suite.expectReads()

	pending, err := suite.service.PendingFeesFor(context.Background(), "student-1")

	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal("fee-tuition", pending[0].Fee.FeeID)
	suite.Equal("fee-library", pending[1].Fee.FeeID)
	suite.True(decimal.NewFromInt(3000).Equal(pending[0].Balance()))
}

func (suite *LedgerServiceTestSuite) TestTotals() {
	ctx := context.Background()
	suite.mockFeeRepo.On("ListFeeStructuresByClass", mock.Anything, "class-1").Return(suite.fees, nil).Times(3)
	suite.mockStudentFeeRepo.On("ListStudentFeesByStudent", mock.Anything, "student-1").Return(suite.records(), nil).Times(3)

	owed, err := suite.service.TotalOwed(ctx, "student-1")
	suite.Require().NoError(err)
	paid, err := suite.service.TotalPaid(ctx, "student-1")
	suite.Require().NoError(err)
	outstanding, err := suite.service.Outstanding(ctx, "student-1")
	suite.Require().NoError(err)

	suite.Equal("6500", owed.String())
	suite.Equal("3200", paid.String())
	suite.Equal("3300", outstanding.String())
}

func (suite *LedgerServiceTestSuite) TestOutstanding_FloorsAtZeroOnOverpayment() {
	paid := calendar.Date{Year: 2025, Month: time.June, Day: 1}
	suite.mockFeeRepo.On("ListFeeStructuresByClass", mock.Anything, "class-1").Return(suite.fees[:1], nil).Once()
	suite.mockStudentFeeRepo.On("ListStudentFeesByStudent", mock.Anything, "student-1").Return([]domain.StudentFee{
		{StudentFeeID: "sf-1", StudentID: "student-1", FeeID: "fee-tuition",
			AmountPaid: decimal.NewFromInt(5100), PaymentDate: &paid, Status: domain.StatusPaid},
	}, nil).Once()

	ledger, err := suite.service.Summary(context.Background(), "student-1")

	suite.Require().NoError(err)
	suite.True(ledger.Outstanding.IsZero())
	suite.Equal("5100", ledger.TotalPaid.String())
}

func (suite *LedgerServiceTestSuite) TestSummary_UnknownStudent() {
	suite.mockSchoolRepo.On("FindStudentByID", mock.Anything, "ghost").
		Return(nil, apperrors.NewNotFoundError("student ghost not found")).Once()

	ledger, err := suite.service.Summary(context.Background(), "ghost")

	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockFeeRepo.AssertNotCalled(suite.T(), "ListFeeStructuresByClass", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSummary_RepairsCorruptDateAndRetries() {
	corrupt := apperrors.NewAppError(apperrors.ErrStorageCorruption, "invalid payment_date", nil)
	suite.mockFeeRepo.On("ListFeeStructuresByClass", mock.Anything, "class-1").Return(suite.fees, nil)
	suite.mockStudentFeeRepo.On("ListStudentFeesByStudent", mock.Anything, "student-1").Return(nil, corrupt).Once()
	suite.mockStudentFeeRepo.On("ListStudentFeesByStudent", mock.Anything, "student-1").Return(suite.records(), nil).Once()
	suite.mockRepairer.On("RepairAll", mock.Anything).Return(&domain.DateRepairResult{Scanned: 4, Repaired: 1}, nil).Once()

	ledger, err := suite.service.Summary(context.Background(), "student-1")

	suite.Require().NoError(err)
	suite.Len(ledger.Entries, 3)
	suite.mockRepairer.AssertNumberOfCalls(suite.T(), "RepairAll", 1)
	suite.mockStudentFeeRepo.AssertNumberOfCalls(suite.T(), "ListStudentFeesByStudent", 2)
}

func (suite *LedgerServiceTestSuite) TestSummary_PersistenceErrorIsNotRepaired() {
	suite.mockFeeRepo.On("ListFeeStructuresByClass", mock.Anything, "class-1").Return(suite.fees, nil).Once()
	suite.mockStudentFeeRepo.On("ListStudentFeesByStudent", mock.Anything, "student-1").
		Return(nil, apperrors.NewPersistenceError("query failed", nil)).Once()

	ledger, err := suite.service.Summary(context.Background(), "student-1")

	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.mockRepairer.AssertNotCalled(suite.T(), "RepairAll", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetEntry_StoredRecord() {
	rec := suite.records()[0]
	suite.mockFeeRepo.On("FindFeeStructureByID", mock.Anything, "fee-tuition").Return(&suite.fees[0], nil).Once()
	suite.mockStudentFeeRepo.On("FindStudentFee", mock.Anything, "student-1", "fee-tuition").Return(&rec, nil).Once()

	entry, err := suite.service.GetEntry(context.Background(), "student-1", "fee-tuition")

	suite.Require().NoError(err)
	suite.Equal("sf-1", entry.Record.StudentFeeID)
	suite.Equal(domain.StatusPartial, entry.Status)
	suite.True(decimal.NewFromInt(3000).Equal(entry.Balance()))
}

func (suite *LedgerServiceTestSuite) TestGetEntry_NeverPaidIsVirtualUnpaid() {
	suite.mockFeeRepo.On("FindFeeStructureByID", mock.Anything, "fee-library").Return(&suite.fees[2], nil).Once()
	suite.mockStudentFeeRepo.On("FindStudentFee", mock.Anything, "student-1", "fee-library").
		Return(nil, apperrors.NewNotFoundError("no record")).Once()

	entry, err := suite.service.GetEntry(context.Background(), "student-1", "fee-library")

	suite.Require().NoError(err)
	suite.True(entry.Record.IsVirtual())
	suite.Equal("student-1", entry.Record.StudentID)
	suite.Equal(domain.StatusUnpaid, entry.Status)
	suite.True(decimal.NewFromInt(300).Equal(entry.Balance()))
}

func (suite *LedgerServiceTestSuite) TestGetEntry_FeeOfAnotherClassIsNotFound() {
	other := domain.FeeStructure{FeeID: "fee-other", ClassID: "class-2", FeeType: "Tuition", Amount: decimal.NewFromInt(100),
		DueDate: calendar.Date{Year: 2025, Month: time.June, Day: 30}}
	suite.mockFeeRepo.On("FindFeeStructureByID", mock.Anything, "fee-other").Return(&other, nil).Once()
	suite.mockStudentFeeRepo.On("FindStudentFee", mock.Anything, "student-1", "fee-other").
		Return(nil, apperrors.NewNotFoundError("no record")).Once()

	entry, err := suite.service.GetEntry(context.Background(), "student-1", "fee-other")

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetEntry_UnknownFeeItem() {
	suite.mockFeeRepo.On("FindFeeStructureByID", mock.Anything, "fee-x").
		Return(nil, apperrors.NewNotFoundError("fee structure fee-x not found")).Once()
	suite.mockStudentFeeRepo.On("FindStudentFee", mock.Anything, "student-1", "fee-x").
		Return(nil, apperrors.NewNotFoundError("no record")).Maybe()

	entry, err := suite.service.GetEntry(context.Background(), "student-1", "fee-x")

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
