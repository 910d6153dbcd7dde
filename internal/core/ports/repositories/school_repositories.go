package repositories

import (
	"context"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
)

// SchoolReader gives read access to classes and students, which are owned by the wider school system.
type SchoolReader interface {
	FindClassByID(ctx context.Context, classID string) (*domain.Class, error)
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	ListStudentsByClass(ctx context.Context, classID string) ([]domain.Student, error)
}
