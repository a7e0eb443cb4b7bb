// Package apperrors defines the error taxonomy shared by the HTTP layer and
// the domain services. Services return errors built from one of the kinds
// below; handlers translate the kind to a status code and surface the
// message to the client unchanged.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind sentinels. Services pick the kind, never the HTTP status.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
)

// Error pairs a kind with a client-facing message.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.kind, target)
}

func Unauthorized(message string) error {
	return &Error{kind: ErrUnauthorized, message: message}
}

func Forbidden(message string) error {
	return &Error{kind: ErrForbidden, message: message}
}

func Conflict(message string) error {
	return &Error{kind: ErrConflict, message: message}
}

func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

func BadRequest(message string) error {
	return &Error{kind: ErrBadRequest, message: message}
}

// StatusCode maps an error chain to the HTTP status it should surface as.
// Anything outside the taxonomy is an opaque server error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for taxonomy errors and a
// generic message for everything else, so data-store details never leak.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.message
	}
	if StatusCode(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
