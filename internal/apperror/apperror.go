package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUpstreamAuth    = errors.New("identity provider failure")
	ErrUnavailable     = errors.New("store unavailable")
)

type AppError struct {
	Err     error  // sentinel category
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthenticated returns an AppError indicating the request has no valid
// session. HTTP handlers map this to 401 Unauthorized.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// UpstreamAuth wraps a failure talking to the identity provider.
// HTTP handlers map this to 502 Bad Gateway.
func UpstreamAuth(message string, err error) *AppError {
	return &AppError{
		Err:     wrap(ErrUpstreamAuth, err),
		Message: message,
	}
}

// Unavailable wraps a store connectivity or transaction failure.
// The wrapped error keeps the diagnostic detail for logs; Message is what
// the client sees.
func Unavailable(message string, err error) *AppError {
	return &AppError{
		Err:     wrap(ErrUnavailable, err),
		Message: message,
	}
}

func wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
