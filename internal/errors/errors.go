package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/authz"
	"github.com/yukikurage/qa-forum-api/internal/services"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInUse         = "RESOURCE_IN_USE"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details any) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// FromError maps a service or authorization error to its status code and envelope.
// Storage and unknown errors become a generic 500 so internals are not leaked.
func FromError(err error) (int, *APIError) {
	switch {
	case stderrors.Is(err, authz.ErrAuthenticationRequired):
		return http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, "Authentication required")
	case stderrors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, err.Error())
	case stderrors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, NewAPIError(ErrCodeForbidden, "Access denied")
	case stderrors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, NewAPIError(ErrCodeNotFound, err.Error())
	case stderrors.Is(err, services.ErrCategoryInUse):
		return http.StatusConflict, NewAPIError(ErrCodeInUse, err.Error())
	case stderrors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict, NewAPIError(ErrCodeAlreadyExists, err.Error())
	case stderrors.Is(err, services.ErrConflict):
		return http.StatusConflict, NewAPIError(ErrCodeConflict, err.Error())
	case stderrors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, err.Error())
	case stderrors.Is(err, services.ErrTagSuggesterUnavailable):
		return http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, err.Error())
	default:
		return http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, "Internal server error")
	}
}

// Respond writes the response for err and records it on the context for the request logger.
func Respond(c *gin.Context, err error) {
	status, apiErr := FromError(err)
	c.Error(err)
	RespondWithError(c, status, apiErr)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response carrying the binding or validation failure.
func BadRequestWithDetails(c *gin.Context, message string, details any) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
