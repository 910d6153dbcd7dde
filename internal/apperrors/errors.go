package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrBlocked indicates that an operation was refused because other records still depend on the target.
var ErrBlocked = errors.New("operation blocked by dependent records")

// ErrStorageCorruption indicates that the store rejected a read because a persisted date is out of range.
var ErrStorageCorruption = errors.New("stored date out of range")

// ErrPersistence indicates a generic storage failure.
var ErrPersistence = errors.New("persistence error")

// ErrUnknownOutcome indicates that a write timed out or was cancelled and may or may not have been applied.
var ErrUnknownOutcome = errors.New("write outcome unknown")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid caller identity.
var ErrUnauthorized = errors.New("unauthorized")

// AppError pairs one of the sentinel kinds above with a human readable message
// and, optionally, the underlying cause.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewAppError creates an AppError of the given kind.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *AppError {
	return NewAppError(ErrValidation, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

func NewBlockedError(message string) *AppError {
	return NewAppError(ErrBlocked, message, nil)
}

func NewPersistenceError(message string, err error) *AppError {
	return NewAppError(ErrPersistence, message, err)
}

// Code returns a stable, machine readable identifier for the kind of err so
// clients can route each failure to a specific message.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrBlocked):
		return "blocked"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrStorageCorruption):
		return "storage_corruption"
	case errors.Is(err, ErrUnknownOutcome):
		return "unknown_outcome"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "persistence_error"
	}
}
