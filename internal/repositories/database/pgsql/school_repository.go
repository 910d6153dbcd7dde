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

type PgxSchoolRepository struct {
	BaseRepository
}

// newPgxSchoolRepository creates a read-only repository over classes and students.
func newPgxSchoolRepository(pool *pgxpool.Pool) portsrepo.SchoolReader {
	return &PgxSchoolRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SchoolReader = (*PgxSchoolRepository)(nil)

func (r *PgxSchoolRepository) FindClassByID(ctx context.Context, classID string) (*domain.Class, error) {
	var m models.Class
	err := r.Pool.QueryRow(ctx,
		`SELECT class_id, name, COALESCE(section, '') FROM classes WHERE class_id = $1;`, classID,
	).Scan(&m.ClassID, &m.Name, &m.Section)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("class %s not found", classID))
		}
		return nil, readError(fmt.Sprintf("failed to find class %s", classID), err)
	}
	class := mapping.ToDomainClass(m)
	return &class, nil
}

func (r *PgxSchoolRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	var m models.Student
	err := r.Pool.QueryRow(ctx,
		`SELECT student_id, class_id, name, COALESCE(admission_no, '') FROM students WHERE student_id = $1;`, studentID,
	).Scan(&m.StudentID, &m.ClassID, &m.Name, &m.AdmissionNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %s not found", studentID))
		}
		return nil, readError(fmt.Sprintf("failed to find student %s", studentID), err)
	}
	student := mapping.ToDomainStudent(m)
	return &student, nil
}

func (r *PgxSchoolRepository) ListStudentsByClass(ctx context.Context, classID string) ([]domain.Student, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT student_id, class_id, name, COALESCE(admission_no, '') FROM students WHERE class_id = $1 ORDER BY name, student_id;`, classID)
	if err != nil {
		return nil, readError(fmt.Sprintf("failed to query students of class %s", classID), err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Student, error) {
		var m models.Student
		err := row.Scan(&m.StudentID, &m.ClassID, &m.Name, &m.AdmissionNo)
		return m, err
	})
	if err != nil {
		return nil, readError(fmt.Sprintf("failed to read students of class %s", classID), err)
	}
	return mapping.ToDomainStudentSlice(ms), nil
}
