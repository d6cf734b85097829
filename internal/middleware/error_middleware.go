package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
)

// ExposeErrorDetails adds the underlying error text to 500 responses.
// Bootstrap enables it outside production mode.
var ExposeErrorDetails = false

// HandleAPIError converts err into the error envelope with a matching status code
func HandleAPIError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.JSON(status, body)
}

// AbortWithAPIError is HandleAPIError for middleware that must stop the chain
func AbortWithAPIError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, dto.Envelope) {
	var validationErr *apperrors.ValidationError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &validationErr):
		message := "Validation failed"
		if len(validationErr.Errors) == 1 {
			message = validationErr.Errors[0]
		}
		return http.StatusBadRequest, dto.Error(message, validationErr.Errors...)
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.Error(apperrors.Message(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.Error(apperrors.Message(err, "Bad request"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.Error(apperrors.Message(err, "Resource not found"))
	case apperrors.Is(err, apperrors.ErrIdentifierExists, apperrors.ErrUsernameExists, apperrors.ErrConflict):
		return http.StatusConflict, dto.Error(apperrors.Message(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrSelfDeletion):
		return http.StatusForbidden, dto.Error(apperrors.Message(err, "Cannot delete your own account"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.Error(apperrors.Message(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.Error("Invalid username or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.Error("Token has expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.Error("Invalid token")
	case errors.Is(err, apperrors.ErrFileTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, dto.Error(apperrors.Message(err, "File size too large"))
	case errors.Is(err, apperrors.ErrInvalidFileType):
		return http.StatusUnsupportedMediaType, dto.Error(apperrors.Message(err, "Invalid file type"))
	case errors.Is(err, apperrors.ErrUploadRejected):
		return http.StatusBadRequest, dto.Error(apperrors.Message(err, "Upload rejected"))
	default:
		message := "Internal server error"
		if ExposeErrorDetails && err != nil {
			message = "Database error: " + err.Error()
		}
		return http.StatusInternalServerError, dto.Error(message)
	}
}
