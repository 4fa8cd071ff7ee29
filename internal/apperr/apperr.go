// Package apperr defines the two error kinds the service distinguishes:
// caller input that fails validation, and model backend failures.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Error codes used in HTTP error envelopes and metric labels.
const (
	CodeValidation = "validation_error"
	CodeBackend    = "backend_error"
	CodeInternal   = "internal_error"
)

// ValidationError records a required field that is missing or malformed for
// the selected family or technique.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Validation returns a ValidationError for field with a stack attached.
func Validation(field, format string, args ...any) error {
	return errors.WithStack(&ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// BackendError is the single kind the model gateway reports for transport,
// authentication, quota and malformed-response failures. Message carries the
// upstream description.
type BackendError struct {
	Provider string
	Message  string
	Err      error
}

func (e *BackendError) Error() string {
	if e.Provider == "" {
		return "backend: " + e.Message
	}
	return fmt.Sprintf("backend: %s: %s", e.Provider, e.Message)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Backend wraps err from provider as a BackendError.
func Backend(provider string, err error) error {
	msg := "unknown failure"
	if err != nil {
		msg = err.Error()
	}
	return errors.WithStack(&BackendError{Provider: provider, Message: msg, Err: err})
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsBackend reports whether err is or wraps a BackendError.
func IsBackend(err error) bool {
	var b *BackendError
	return errors.As(err, &b)
}

// Code classifies err into one of the Code* constants.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return CodeValidation
	case IsBackend(err):
		return CodeBackend
	default:
		return CodeInternal
	}
}

// HTTPStatus maps err to the status code the HTTP layer responds with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeBackend:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing text for err. Validation and backend
// errors expose their own message; anything else is reported generically.
func Message(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	var b *BackendError
	if errors.As(err, &b) {
		return b.Error()
	}
	if err == nil {
		return ""
	}
	return "internal error"
}
