package apperrors

import (
	"errors"
	"fmt"
)

// Transport and response errors
var (
	// ErrNetwork means no response was received at all (DNS failure,
	// refused connection, timeout). Distinct from a server error status.
	ErrNetwork = errors.New("network failure")

	// ErrMalformedResponse means the server answered but the body did
	// not match the expected schema for the endpoint.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrServerRejected means the server answered with an error status
	// and a structured message body.
	ErrServerRejected = errors.New("server rejected request")
)

// Validation errors, raised client-side before any network call
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
)

// Local session errors
var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired")
)

// StatusError carries the HTTP status and the server's own message for
// a rejected request. It unwraps to ErrServerRejected.
type StatusError struct {
	Status  int
	Message string
}

// Error implements error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// Unwrap implements errors.Unwrap interface
func (e *StatusError) Unwrap() error {
	return ErrServerRejected
}

// NewStatusError creates a StatusError for an HTTP error response
func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

// CustomError represents client errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewValidationError creates a validation error with a field-level message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// UserMessage extracts the message the UI should surface for err: the
// server's own message for rejections, a generic fallback otherwise.
func UserMessage(err error, fallback string) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}

	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}

	if errors.Is(err, ErrNetwork) {
		return "Network error - server unavailable"
	}

	return fallback
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
