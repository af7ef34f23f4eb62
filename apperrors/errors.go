package apperrors

import (
	"fmt"
	"net/http"
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Unauthorized means the caller is not authenticated (401).
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Forbidden means the caller is authenticated but not allowed (403).
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// NotFound means the referenced entity does not exist (404).
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Validation means the request payload is malformed (400).
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Conflict means the request lost a race with a concurrent one (409).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Internal wraps an unexpected failure (500). The wrapped error is logged,
// never serialized to the client.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Common error values
var (
	ErrUnauthorized   = Unauthorized("Unauthorized")
	ErrForbidden      = Forbidden("Forbidden")
	ErrNotFound       = NotFound("Not found")
	ErrValidation     = Validation("Validation error")
	ErrConflict       = Conflict("Conflict")
	ErrInternalServer = Internal("Internal server error", nil)
)
