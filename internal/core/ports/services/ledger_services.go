package services

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc answers what a student owes and what they have paid.
// Fee items without a stored record are reported as virtual unpaid entries.
type LedgerReaderSvc interface {
	ListEntries(ctx context.Context, studentID string) ([]domain.LedgerEntry, error)
	// GetEntry returns one fee item of the student's class with the student's
	// record for it, or a virtual unpaid entry when nothing was paid yet.
	GetEntry(ctx context.Context, studentID, feeID string) (*domain.LedgerEntry, error)
	PendingFeesFor(ctx context.Context, studentID string) ([]domain.LedgerEntry, error)
	Summary(ctx context.Context, studentID string) (*domain.StudentLedger, error)
}

// LedgerTotalsSvc exposes the individual balance figures of a student.
type LedgerTotalsSvc interface {
	TotalOwed(ctx context.Context, studentID string) (decimal.Decimal, error)
	TotalPaid(ctx context.Context, studentID string) (decimal.Decimal, error)
	Outstanding(ctx context.Context, studentID string) (decimal.Decimal, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerTotalsSvc
}
