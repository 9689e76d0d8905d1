// Package apierrors provides the gateway's fixed error taxonomy and its
// mapping to HTTP status codes and wire codes.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is one of the seven error kinds the gateway ever returns to a caller.
type Kind string

const (
	KindBadRequest      Kind = "BAD_REQUEST"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindNotYetIndexed   Kind = "NOT_YET_INDEXED"
	KindTooManyRequests Kind = "TOO_MANY_REQUESTS"
	KindInternal        Kind = "INTERNAL_ERROR"
)

var statusByKind = map[Kind]int{
	KindBadRequest:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindNotYetIndexed:   http.StatusAccepted,
	KindTooManyRequests: http.StatusTooManyRequests,
	KindInternal:        http.StatusInternalServerError,
}

// Error is the gateway's caller-safe error value. It never carries a stack
// or echoes an internal source error in its Message; Wrapped is kept for
// logging only and must never be serialized.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// HTTPStatus returns the fixed status code for the error's kind.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an internal error for logging while keeping message caller-safe.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Wrapped: err}
}

func BadRequest(message string) *Error      { return New(KindBadRequest, message) }
func Unauthorized(message string) *Error    { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func NotYetIndexed(message string) *Error   { return New(KindNotYetIndexed, message) }
func TooManyRequests(message string) *Error { return New(KindTooManyRequests, message) }
func Internal(message string) *Error        { return New(KindInternal, message) }

// InternalFrom wraps err as a generic Internal error, preserving err only
// for the caller to log — it is never rendered to the client.
func InternalFrom(err error) *Error {
	return Wrap(KindInternal, "an internal error occurred", err)
}

// As extracts an *Error from err, falling back to a generic Internal error
// when err is not already one of ours.
func As(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return InternalFrom(err)
}
