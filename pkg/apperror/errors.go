package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Retryable marks transient upstream failures that were already retried
	// with backoff before surfacing.
	Retryable bool `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound        = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest      = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer  = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrTaskNotFound    = &AppError{Code: http.StatusNotFound, Message: "Task not found"}
	ErrUpstreamAuth    = &AppError{Code: http.StatusBadGateway, Message: "Upstream authentication failed"}
	ErrUpstreamTimeout = &AppError{Code: http.StatusGatewayTimeout, Message: "Upstream request timed out", Retryable: true}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewUpstreamError wraps a failed upstream call. Transient statuses (429,
// 5xx) are marked retryable; other client errors surface immediately.
func NewUpstreamError(status int, message string) *AppError {
	return &AppError{
		Code:      http.StatusBadGateway,
		Message:   message,
		Retryable: status == http.StatusTooManyRequests || status >= 500,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
