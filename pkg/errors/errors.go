package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// ErrMalformedSchedule marks a single class session whose time range
	// cannot be parsed. The resolver skips the entry and keeps going.
	ErrMalformedSchedule = New("MALFORMED_SCHEDULE", http.StatusUnprocessableEntity, "malformed schedule entry")

	// ErrMissingDeliveryToken means the user is unreachable, not broken.
	ErrMissingDeliveryToken = New("MISSING_DELIVERY_TOKEN", http.StatusPreconditionFailed, "user has no delivery token")

	// ErrTaskExists is the queue reporting a duplicate idempotency key.
	// Callers treat it as success.
	ErrTaskExists = New("TASK_EXISTS", http.StatusConflict, "task already scheduled")

	// ErrQueueSubmission covers every other queue failure.
	ErrQueueSubmission = New("QUEUE_SUBMISSION_FAILED", http.StatusBadGateway, "queue submission failed")

	// ErrUnknownExceptionKind rejects exception kinds outside the closed set.
	ErrUnknownExceptionKind = New("UNKNOWN_EXCEPTION_KIND", http.StatusBadRequest, "unrecognized schedule exception kind")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
