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
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/kennethjason07/school_management_app/internal/utils/mapping"
)

const studentFeeColumns = `sf.student_fee_id, sf.student_id, sf.fee_id, sf.amount_paid, sf.payment_date, sf.status,
	sf.created_at, sf.created_by, sf.last_updated_at, sf.last_updated_by`

type PgxStudentFeeRepository struct {
	BaseRepository
}

// newPgxStudentFeeRepository creates a new repository for ledger entries.
func newPgxStudentFeeRepository(pool *pgxpool.Pool) portsrepo.StudentFeeRepositoryFacade {
	return &PgxStudentFeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StudentFeeRepositoryFacade = (*PgxStudentFeeRepository)(nil)

func scanStudentFee(row pgx.CollectableRow) (models.StudentFee, error) {
	var m models.StudentFee
	err := row.Scan(
		&m.StudentFeeID,
		&m.StudentID,
		&m.FeeID,
		&m.AmountPaid,
		&m.PaymentDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ApplyDelta is a single upsert: the increment and the status derivation both
// happen inside the row lock Postgres takes for ON CONFLICT DO UPDATE, so
// concurrent payments on one entry serialize instead of overwriting each other.
func (r *PgxStudentFeeRepository) ApplyDelta(ctx context.Context, delta domain.PaymentDelta) (*domain.StudentFee, error) {
	query := `
		INSERT INTO student_fees AS sf (student_fee_id, student_id, fee_id, amount_paid, payment_date, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4::numeric(14,2), $5,
			CASE WHEN $4::numeric(14,2) >= $6::numeric THEN 'paid'
			     WHEN $4::numeric(14,2) > 0 THEN 'partial'
			     ELSE 'unpaid' END,
			$7, $8, $7, $8)
		ON CONFLICT (student_id, fee_id) DO UPDATE SET
			amount_paid = sf.amount_paid + EXCLUDED.amount_paid,
			payment_date = EXCLUDED.payment_date,
			status = CASE WHEN sf.amount_paid + EXCLUDED.amount_paid >= $6::numeric THEN 'paid'
			              WHEN sf.amount_paid + EXCLUDED.amount_paid > 0 THEN 'partial'
			              ELSE 'unpaid' END,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + studentFeeColumns + `;`

	rows, err := r.Pool.Query(ctx, query,
		delta.StudentFeeID,
		delta.StudentID,
		delta.FeeID,
		delta.Amount,
		calendar.Format(delta.PaymentDate),
		delta.OwedAmount,
		delta.At,
		delta.UserID,
	)
	msg := fmt.Sprintf("failed to apply payment to student %s fee %s", delta.StudentID, delta.FeeID)
	if err != nil {
		return nil, writeError(ctx, msg, err, apperrors.ErrNotFound)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanStudentFee)
	if err != nil {
		return nil, writeError(ctx, msg, err, apperrors.ErrNotFound)
	}

	rec, err := mapping.ToDomainStudentFee(m)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PgxStudentFeeRepository) FindStudentFee(ctx context.Context, studentID, feeID string) (*domain.StudentFee, error) {
	query := `SELECT ` + studentFeeColumns + ` FROM student_fees sf WHERE sf.student_id = $1 AND sf.fee_id = $2;`
	rows, err := r.Pool.Query(ctx, query, studentID, feeID)
	if err != nil {
		return nil, readError("failed to query student fee", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanStudentFee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no payments recorded for student %s fee %s", studentID, feeID))
		}
		return nil, readError("failed to scan student fee", err)
	}
	rec, err := mapping.ToDomainStudentFee(m)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PgxStudentFeeRepository) ListStudentFeesByStudent(ctx context.Context, studentID string) ([]domain.StudentFee, error) {
	query := `SELECT ` + studentFeeColumns + `
		FROM student_fees sf
		WHERE sf.student_id = $1
		ORDER BY sf.payment_date::date NULLS LAST, sf.fee_id;`
	return r.list(ctx, fmt.Sprintf("student fees of student %s", studentID), query, studentID)
}

func (r *PgxStudentFeeRepository) ListStudentFeesByClass(ctx context.Context, classID string) ([]domain.StudentFee, error) {
	query := `SELECT ` + studentFeeColumns + `
		FROM student_fees sf
		JOIN students s ON s.student_id = sf.student_id
		WHERE s.class_id = $1
		ORDER BY sf.student_id, sf.payment_date::date NULLS LAST, sf.fee_id;`
	return r.list(ctx, fmt.Sprintf("student fees of class %s", classID), query, classID)
}

func (r *PgxStudentFeeRepository) ListStudentFees(ctx context.Context) ([]domain.StudentFee, error) {
	query := `SELECT ` + studentFeeColumns + `
		FROM student_fees sf
		ORDER BY sf.student_id, sf.payment_date::date NULLS LAST, sf.fee_id;`
	return r.list(ctx, "student fees", query)
}

func (r *PgxStudentFeeRepository) CountStudentFeesByFee(ctx context.Context, feeID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM student_fees WHERE fee_id = $1;`, feeID).Scan(&count)
	if err != nil {
		return 0, readError(fmt.Sprintf("failed to count student fees of fee %s", feeID), err)
	}
	return count, nil
}

func (r *PgxStudentFeeRepository) list(ctx context.Context, what, query string, args ...any) ([]domain.StudentFee, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("failed to query "+what, err)
	}
	ms, err := pgx.CollectRows(rows, scanStudentFee)
	if err != nil {
		return nil, readError("failed to read "+what, err)
	}
	return mapping.ToDomainStudentFeeSlice(ms)
}
