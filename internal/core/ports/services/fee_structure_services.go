package services

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/dto"
)

// FeeStructureReaderSvc defines read operations on class fee catalogs
type FeeStructureReaderSvc interface {
	// ListByClass returns the catalog of one class ordered by due date.
	ListByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error)

	// ListAll returns every fee item ordered by class, then due date.
	ListAll(ctx context.Context) ([]domain.FeeStructure, error)

	// GetFeeStructure returns one fee item or apperrors.ErrNotFound.
	GetFeeStructure(ctx context.Context, feeID string) (*domain.FeeStructure, error)
}

// FeeStructureWriterSvc defines write operations on class fee catalogs
type FeeStructureWriterSvc interface {
	CreateFeeStructure(ctx context.Context, classID string, req dto.CreateFeeStructureRequest, userID string) (*domain.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, feeID string, req dto.UpdateFeeStructureRequest, userID string) (*domain.FeeStructure, error)

	// DeleteFeeStructure returns apperrors.ErrBlocked while any ledger entry references the item.
	DeleteFeeStructure(ctx context.Context, feeID string, userID string) error
}

// FeeStructureSvcFacade combines all fee-structure service interfaces
type FeeStructureSvcFacade interface {
	FeeStructureReaderSvc
	FeeStructureWriterSvc
}
