package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
)

// SQLSTATE codes the repositories react to.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgDatetimeOverflow    = "22008"
	pgInvalidDatetime     = "22007"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// readError classifies a failed query. A date cast that the server rejects
// means a stored date is corrupt and can be repaired.
func readError(msg string, err error) error {
	switch pgErrorCode(err) {
	case pgDatetimeOverflow, pgInvalidDatetime:
		return apperrors.NewAppError(apperrors.ErrStorageCorruption, msg, err)
	}
	return apperrors.NewPersistenceError(msg, err)
}

// writeError classifies a failed mutation. A write cut off by a timeout or
// cancellation may still have committed, so it is reported as an unknown
// outcome. fkKind is what a foreign key violation means for this write.
func writeError(ctx context.Context, msg string, err error, fkKind error) error {
	if ctx.Err() != nil || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewAppError(apperrors.ErrUnknownOutcome, msg, err)
	}
	switch pgErrorCode(err) {
	case pgForeignKeyViolation:
		return apperrors.NewAppError(fkKind, msg, err)
	case pgUniqueViolation:
		return apperrors.NewAppError(apperrors.ErrDuplicate, msg, err)
	case pgCheckViolation:
		return apperrors.NewAppError(apperrors.ErrValidation, msg, err)
	case pgDatetimeOverflow, pgInvalidDatetime:
		return apperrors.NewAppError(apperrors.ErrValidation, msg, err)
	}
	return apperrors.NewPersistenceError(msg, err)
}
