package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	"github.com/kennethjason07/school_management_app/internal/models"
	"github.com/kennethjason07/school_management_app/internal/utils/mapping"
)

const feeStructureColumns = `fee_id, class_id, fee_type, amount, due_date, COALESCE(description, ''),
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFeeStructureRepository struct {
	BaseRepository
}

// newPgxFeeStructureRepository creates a new repository for the class fee catalog.
func newPgxFeeStructureRepository(pool *pgxpool.Pool) portsrepo.FeeStructureRepositoryFacade {
	return &PgxFeeStructureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FeeStructureRepositoryFacade = (*PgxFeeStructureRepository)(nil)

func scanFeeStructure(row pgx.CollectableRow) (models.FeeStructure, error) {
	var m models.FeeStructure
	err := row.Scan(
		&m.FeeID,
		&m.ClassID,
		&m.FeeType,
		&m.Amount,
		&m.DueDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFeeStructureRepository) SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	m := mapping.ToModelFeeStructure(fee)
	query := `
		INSERT INTO fee_structures (fee_id, class_id, fee_type, amount, due_date, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FeeID, m.ClassID, m.FeeType, m.Amount, m.DueDate, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(ctx, fmt.Sprintf("failed to save fee structure %s", m.FeeID), err, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxFeeStructureRepository) UpdateFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	m := mapping.ToModelFeeStructure(fee)
	query := `
		UPDATE fee_structures
		SET fee_type = $2, amount = $3, due_date = $4, description = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE fee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FeeID, m.FeeType, m.Amount, m.DueDate, m.Description, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(ctx, fmt.Sprintf("failed to update fee structure %s", m.FeeID), err, apperrors.ErrNotFound)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", m.FeeID))
	}
	return nil
}

// DeleteFeeStructure deletes only when no ledger entry references the item.
// The NOT EXISTS guard and the RESTRICT foreign key both refuse it otherwise.
func (r *PgxFeeStructureRepository) DeleteFeeStructure(ctx context.Context, feeID string) error {
	query := `
		DELETE FROM fee_structures f
		WHERE f.fee_id = $1
		  AND NOT EXISTS (SELECT 1 FROM student_fees sf WHERE sf.fee_id = f.fee_id);
	`
	tag, err := r.Pool.Exec(ctx, query, feeID)
	if err != nil {
		return writeError(ctx, fmt.Sprintf("failed to delete fee structure %s", feeID), err, apperrors.ErrBlocked)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fee_structures WHERE fee_id = $1);`, feeID).Scan(&exists); err != nil {
		return readError(fmt.Sprintf("failed to check fee structure %s", feeID), err)
	}
	if exists {
		return apperrors.NewBlockedError(fmt.Sprintf("fee structure %s is referenced by student fee records", feeID))
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", feeID))
}

func (r *PgxFeeStructureRepository) FindFeeStructureByID(ctx context.Context, feeID string) (*domain.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + ` FROM fee_structures WHERE fee_id = $1;`
	rows, err := r.Pool.Query(ctx, query, feeID)
	if err != nil {
		return nil, readError(fmt.Sprintf("failed to query fee structure %s", feeID), err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanFeeStructure)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", feeID))
		}
		return nil, readError(fmt.Sprintf("failed to scan fee structure %s", feeID), err)
	}

	fee, err := mapping.ToDomainFeeStructure(m)
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// ListFeeStructuresByClass orders by the due date cast, so a corrupt due date
// fails the whole read with ErrStorageCorruption.
func (r *PgxFeeStructureRepository) ListFeeStructuresByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + `
		FROM fee_structures
		WHERE class_id = $1
		ORDER BY due_date::date, fee_type, fee_id;`
	return r.list(ctx, fmt.Sprintf("fee structures of class %s", classID), query, classID)
}

func (r *PgxFeeStructureRepository) ListFeeStructures(ctx context.Context) ([]domain.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + `
		FROM fee_structures
		ORDER BY class_id, due_date::date, fee_type, fee_id;`
	return r.list(ctx, "fee structures", query)
}

func (r *PgxFeeStructureRepository) list(ctx context.Context, what, query string, args ...any) ([]domain.FeeStructure, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("failed to query "+what, err)
	}
	ms, err := pgx.CollectRows(rows, scanFeeStructure)
	if err != nil {
		return nil, readError("failed to read "+what, err)
	}
	return mapping.ToDomainFeeStructureSlice(ms)
}
