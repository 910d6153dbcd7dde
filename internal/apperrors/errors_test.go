package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("saving fee: %w", apperrors.NewPersistenceError("insert failed", cause))

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", apperrors.NewValidationError("amount must be positive"), "validation_error"},
		{"not found", fmt.Errorf("wrapped: %w", apperrors.ErrNotFound), "not_found"},
		{"blocked", apperrors.NewBlockedError("fee has payments"), "blocked"},
		{"corruption", apperrors.ErrStorageCorruption, "storage_corruption"},
		{"unknown outcome", apperrors.ErrUnknownOutcome, "unknown_outcome"},
		{"anything else", errors.New("boom"), "persistence_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.Code(tt.err))
		})
	}
}
