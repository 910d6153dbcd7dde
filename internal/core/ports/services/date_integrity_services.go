package services

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
)

// DateRepairerSvc repairs every out-of-range stored date. It is what the
// other services call when a read fails with apperrors.ErrStorageCorruption.
type DateRepairerSvc interface {
	RepairAll(ctx context.Context) (*domain.DateRepairResult, error)
}

// DateIntegritySvcFacade adds repair of an explicit list of raw values.
type DateIntegritySvcFacade interface {
	DateRepairerSvc

	// Repair clamps each overflowed value to the last day of its month and
	// returns how many records were actually changed, even when it also
	// returns an error for the ones that could not be.
	Repair(ctx context.Context, values []domain.RawDateValue) (int, error)
}
