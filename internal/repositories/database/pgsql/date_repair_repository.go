package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
)

// rewriteQueries holds one compare-and-set statement per repairable column.
var rewriteQueries = map[[2]string]string{
	{domain.TableFeeStructures, domain.FieldDueDate}: `
		UPDATE fee_structures SET due_date = $3 WHERE fee_id = $1 AND due_date = $2;`,
	{domain.TableStudentFees, domain.FieldPaymentDate}: `
		UPDATE student_fees SET payment_date = $3 WHERE student_fee_id = $1 AND payment_date = $2;`,
}

type PgxDateRepairRepository struct {
	BaseRepository
}

func newPgxDateRepairRepository(pool *pgxpool.Pool) portsrepo.DateRepairRepository {
	return &PgxDateRepairRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DateRepairRepository = (*PgxDateRepairRepository)(nil)

// ListRawDates reads the date columns as text, without any cast, so it works
// while they hold values the server refuses to interpret as dates.
func (r *PgxDateRepairRepository) ListRawDates(ctx context.Context) ([]domain.RawDateValue, error) {
	query := `
		SELECT 'fee_structures', 'due_date', fee_id, due_date FROM fee_structures
		UNION ALL
		SELECT 'student_fees', 'payment_date', student_fee_id, payment_date FROM student_fees
		WHERE payment_date IS NOT NULL;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, readError("failed to query raw dates", err)
	}
	values, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RawDateValue, error) {
		var v domain.RawDateValue
		err := row.Scan(&v.Table, &v.Field, &v.RecordID, &v.Value)
		return v, err
	})
	if err != nil {
		return nil, readError("failed to read raw dates", err)
	}
	return values, nil
}

func (r *PgxDateRepairRepository) RewriteDate(ctx context.Context, value domain.RawDateValue, repaired string) (bool, error) {
	query, ok := rewriteQueries[[2]string{value.Table, value.Field}]
	if !ok {
		return false, apperrors.NewValidationError(fmt.Sprintf("%s.%s is not a repairable date column", value.Table, value.Field))
	}
	tag, err := r.Pool.Exec(ctx, query, value.RecordID, value.Value, repaired)
	if err != nil {
		return false, writeError(ctx, fmt.Sprintf("failed to rewrite %s.%s of %s", value.Table, value.Field, value.RecordID), err, apperrors.ErrPersistence)
	}
	return tag.RowsAffected() > 0, nil
}
