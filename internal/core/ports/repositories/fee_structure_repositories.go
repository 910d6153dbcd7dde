package repositories

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
)

// FeeStructureReader defines read operations for the class fee catalog.
// Reads that order or filter by due date return apperrors.ErrStorageCorruption
// when a stored due date is not a real calendar day.
type FeeStructureReader interface {
	// FindFeeStructureByID retrieves a single fee item.
	FindFeeStructureByID(ctx context.Context, feeID string) (*domain.FeeStructure, error)

	// ListFeeStructuresByClass retrieves the catalog of one class ordered by due date, then fee type.
	ListFeeStructuresByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error)

	// ListFeeStructures retrieves every fee item ordered by class, then due date.
	ListFeeStructures(ctx context.Context) ([]domain.FeeStructure, error)
}

// FeeStructureWriter defines write operations for the class fee catalog.
type FeeStructureWriter interface {
	// SaveFeeStructure persists a new fee item.
	SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error

	// UpdateFeeStructure overwrites the mutable fields of an existing fee item.
	UpdateFeeStructure(ctx context.Context, fee domain.FeeStructure) error

	// DeleteFeeStructure removes a fee item. It returns apperrors.ErrBlocked,
	// without deleting, if any student fee record still references it.
	DeleteFeeStructure(ctx context.Context, feeID string) error
}

// FeeStructureRepositoryFacade combines all fee-structure repository interfaces.
type FeeStructureRepositoryFacade interface {
	FeeStructureReader
	FeeStructureWriter
}
