package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so the HTTP layer can map it to a status code
// without inspecting store- or provider-specific errors.
type Kind int

const (
	Unknown Kind = iota
	Validation
	Unauthenticated
	Unauthorized
	Forbidden
	NotFound
	Conflict
	Geocode
	Store
	Transaction
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Geocode:
		return "geocode"
	case Store:
		return "store"
	case Transaction:
		return "transaction"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error carries a kind, a client-safe message, and an optional cause.
// The cause is for logs only and never crosses the HTTP boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or Unknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// MessageOf returns the client-safe message for err. Foreign errors get a
// generic message so no internal detail leaks.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "An unknown error occurred!"
}

// HTTPStatus maps a Kind to the status code the original API used.
// Forbidden deliberately maps to 401, and Conflict to 422.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Validation, Conflict:
		return http.StatusUnprocessableEntity
	case Unauthenticated, Unauthorized, Forbidden:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf is shorthand for HTTPStatus(KindOf(err)).
func StatusOf(err error) int {
	return HTTPStatus(KindOf(err))
}
