package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
)

// readWithRepair runs read and, if it fails because a stored date is out of
// range, runs one full date repair and retries read exactly once. A failed
// repair is not retried: its error is returned together with the read error.
func readWithRepair[T any](ctx context.Context, base *BaseService, repairer portssvc.DateRepairerSvc, what string, read func(context.Context) (T, error)) (T, error) {
	result, err := read(ctx)
	if err == nil || repairer == nil || !errors.Is(err, apperrors.ErrStorageCorruption) {
		return result, err
	}

	base.LogWarn(ctx, "Stored date out of range, repairing before retry",
		slog.String("read", what),
		slog.String("error", err.Error()))

	summary, repairErr := repairer.RepairAll(ctx)
	if repairErr != nil {
		base.LogError(ctx, repairErr, "Date repair failed, not retrying read", slog.String("read", what))
		var zero T
		return zero, errors.Join(err, repairErr)
	}

	base.LogInfo(ctx, "Date repair finished, retrying read",
		slog.String("read", what),
		slog.Int("scanned", summary.Scanned),
		slog.Int("repaired", summary.Repaired))

	result, err = read(ctx)
	if err != nil {
		base.LogError(ctx, err, "Read still failing after date repair", slog.String("read", what))
	}
	return result, err
}
