package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestReadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"date overflow", &pgconn.PgError{Code: pgDatetimeOverflow}, apperrors.ErrStorageCorruption},
		{"bad date text", &pgconn.PgError{Code: pgInvalidDatetime}, apperrors.ErrStorageCorruption},
		{"other server error", &pgconn.PgError{Code: "42P01"}, apperrors.ErrPersistence},
		{"network", errors.New("connection reset"), apperrors.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := readError("read failed", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWriteError(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		err    error
		fkKind error
		want   error
	}{
		{"fk on delete", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrBlocked, apperrors.ErrBlocked},
		{"fk on insert", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrNotFound, apperrors.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation}, apperrors.ErrNotFound, apperrors.ErrDuplicate},
		{"check", &pgconn.PgError{Code: pgCheckViolation}, apperrors.ErrNotFound, apperrors.ErrValidation},
		{"deadline", context.DeadlineExceeded, apperrors.ErrNotFound, apperrors.ErrUnknownOutcome},
		{"other", errors.New("boom"), apperrors.ErrNotFound, apperrors.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, writeError(ctx, "write failed", tt.err, tt.fkKind), tt.want)
		})
	}
}

func TestWriteError_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := writeError(ctx, "write failed", errors.New("conn closed"), apperrors.ErrNotFound)
	assert.ErrorIs(t, err, apperrors.ErrUnknownOutcome)
}
