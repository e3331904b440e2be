// Package apperrors defines the error taxonomy shared by the domain,
// services and HTTP layer. Every business failure is one of a small set of
// codes; the HTTP layer maps codes to status codes and never inspects
// messages.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	CodeValidation Code = iota + 1
	CodeNotFound
	CodeConflict
	CodeForbidden
	CodeUnauthenticated
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeValidation:
		return "validation"
	case CodeNotFound:
		return "not_found"
	case CodeConflict:
		return "conflict"
	case CodeForbidden:
		return "forbidden"
	case CodeUnauthenticated:
		return "unauthenticated"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

var code2http = map[Code]int{
	CodeValidation:      http.StatusBadRequest,
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeForbidden:       http.StatusForbidden,
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeInternal:        http.StatusInternalServerError,
}

// Error is a coded application error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatusCode maps the error code to a transport status code.
func (e *Error) HTTPStatusCode() int {
	if s, ok := code2http[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Conflictf(format string, args ...any) *Error {
	return Newf(CodeConflict, format, args...)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: err}
}

// Convert coerces any error into an *Error, wrapping unknown errors as
// internal so callers never leak raw storage errors to the transport.
func Convert(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
