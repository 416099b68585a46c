package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and writes
// the failure envelope.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrUnverified):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled service error")
	}

	c.JSON(status, dto.NewErrorResponse(message, apperrors.DevDetail(err)))
}
