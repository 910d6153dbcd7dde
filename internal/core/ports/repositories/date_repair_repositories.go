package repositories

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
)

// DateRepairRepository reads and rewrites raw date column values without
// interpreting them, so it keeps working while the data is corrupt.
type DateRepairRepository interface {
	// ListRawDates returns every non-null value of every repairable date column.
	ListRawDates(ctx context.Context) ([]domain.RawDateValue, error)

	// RewriteDate replaces value.Value with repaired, only if the stored value
	// still equals value.Value. It reports whether a row was changed.
	RewriteDate(ctx context.Context, value domain.RawDateValue, repaired string) (bool, error)
}
