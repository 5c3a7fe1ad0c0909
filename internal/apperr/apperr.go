// Package apperr defines the closed set of application error kinds shared by
// the accounts model and its callers. Expected failures are always carried as
// *Error values; callers classify with KindOf and errors.Is/As rather than by
// inspecting messages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind tags an Error with one of the closed taxonomy values.
type Kind string

const (
	AuthenticationFailed Kind = "AuthenticationFailed"
	ForbiddenAccess      Kind = "ForbiddenAccess"
	ForbiddenOperation   Kind = "ForbiddenOperation"
	InvalidParams        Kind = "InvalidParams"
	InvalidState         Kind = "InvalidState"
	ServerError          Kind = "ServerError"
	DatabaseError        Kind = "DatabaseError"
	TargetNotFound       Kind = "TargetNotFound"
	UnexpectedError      Kind = "UnexpectedError"
)

// HTTPStatus maps a kind to the status code the REST layer must respond with.
func (k Kind) HTTPStatus() int {
	switch k {
	case AuthenticationFailed:
		return http.StatusUnauthorized
	case ForbiddenAccess, ForbiddenOperation:
		return http.StatusForbidden
	case TargetNotFound:
		return http.StatusNotFound
	case InvalidParams, InvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a tagged application error. Details holds sub-error messages
// (e.g. individual validation violations); cause keeps the wrapped error
// reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags cause with the given kind, keeping it on the unwrap chain.
func Wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithDetails returns a copy of e carrying the given sub-error messages.
func (e *Error) WithDetails(details ...string) *Error {
	out := *e
	out.Details = append(out.Details[:len(out.Details):len(out.Details)], details...)
	return &out
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if len(e.Details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Details, "; "))
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches by kind, so errors.Is(err, apperr.New(kind, "")) works as a kind
// check regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// From extracts the *Error from err's chain, or wraps err as UnexpectedError.
// From(nil) returns nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, UnexpectedError, err.Error())
}

// KindOf reports the kind of err, defaulting to UnexpectedError for untagged
// errors and the zero Kind for nil.
func KindOf(err error) Kind {
	if err == nil {
		return Kind("")
	}
	return From(err).Kind
}
