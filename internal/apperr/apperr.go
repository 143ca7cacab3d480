// Package apperr classifies failures at the I/O boundary so handlers can
// translate them into the response envelope.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindDependency Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	default:
		return "dependency"
	}
}

// Error carries a user-facing message and, optionally, the underlying cause.
// The cause is logged but never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// Dependency wraps a failed database, cache, media or identity call.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf returns the kind of err; unclassified errors are dependency failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
