package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/middleware"
)

// statusForError maps an application error kind to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrBlocked), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrStorageCorruption):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrUnknownOutcome):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error","code"}. Client errors carry the service
// message; server errors carry fallback so storage details stay in the logs.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	code := apperrors.Code(err)

	msg := err.Error()
	switch {
	case status == http.StatusGatewayTimeout:
		msg = fallback + ": the write may or may not have been applied, re-read before retrying"
	case status >= http.StatusInternalServerError:
		msg = fallback
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()), slog.String("code", code))
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.String("code", code))
	}
	c.JSON(status, gin.H{"error": msg, "code": code})
}

// respondBindError reports a request body or query that failed binding.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "code": apperrors.Code(apperrors.ErrValidation)})
}

// requireUserID returns the authenticated user id or writes a 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperrors.Code(apperrors.ErrUnauthorized)})
		return "", false
	}
	return userID, true
}
