package services

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
)

// StatisticsSvc produces read-only aggregate views of the ledger.
type StatisticsSvc interface {
	// Snapshot folds over the whole catalog and ledger; an empty ledger yields zeros.
	Snapshot(ctx context.Context) (*domain.FeeSnapshot, error)
	StudentBalance(ctx context.Context, studentID string) (*domain.StudentBalance, error)
	ClassBalances(ctx context.Context, classID string) ([]domain.StudentBalance, error)
}
