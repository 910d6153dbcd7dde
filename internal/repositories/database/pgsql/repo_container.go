package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FeeStructureRepo: newPgxFeeStructureRepository(dbPool),
		StudentFeeRepo:   newPgxStudentFeeRepository(dbPool),
		SchoolRepo:       newPgxSchoolRepository(dbPool),
		DateRepairRepo:   newPgxDateRepairRepository(dbPool),
	}
}
