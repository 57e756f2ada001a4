// Package apperr defines the error kinds a request can end in and how each
// kind maps to an HTTP status.
package apperr

import (
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"strings"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	// Internal is anything not explicitly classified; it is never shown to clients.
	Internal Kind = iota
	Validation
	NotFound
	Unauthorized
	BadToken
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case BadToken:
		return "bad_token"
	case Forbidden:
		return "forbidden"
	}
	return "internal"
}

// Error carries a client-facing message next to the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	pcs []uintptr
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Message: msg, Err: cause}
}

func Invalid(msg string) *Error { return newError(Validation, msg, nil) }
func InvalidCause(msg string, err error) *Error { return newError(Validation, msg, err) }
func Missing(msg string) *Error { return newError(NotFound, msg, nil) }
func MissingCause(msg string, err error) *Error { return newError(NotFound, msg, err) }
func Unauthenticated(msg string) *Error { return newError(Unauthorized, msg, nil) }
func InvalidToken(msg string, err error) *Error { return newError(BadToken, msg, err) }
func Denied(msg string) *Error { return newError(Forbidden, msg, nil) }

// Wrap marks err as internal and records the caller's stack. The message is
// only used in logs.
func Wrap(msg string, err error) *Error {
	e := newError(Internal, msg, err)
	pcs := make([]uintptr, 32)
	e.pcs = pcs[:runtime.Callers(2, pcs)]
	return e
}

// Stack renders the stack recorded by Wrap, one "function\n\tfile:line" pair
// per frame. It is empty for errors built by the other constructors.
func (e *Error) Stack() string {
	if len(e.pcs) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(e.pcs)
	for {
		f, more := frames.Next()
		b.WriteString(f.Function)
		b.WriteString("\n\t")
		b.WriteString(f.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
		if !more {
			break
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// StackOf returns the stack recorded where err was wrapped, if any.
func StackOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stack()
	}
	return ""
}

// KindOf reports the kind of err. Errors that are not *Error are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps a kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case Validation, BadToken:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message of err, or "" for internal errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return ""
}
