// Package domainerrors defines coded errors for the domain boundary.
//
// Services return these for validation and business-rule failures so the
// transport layer can map them to HTTP statuses without inspecting error
// strings. Infrastructure facts use pkg/platform/sentinel instead.
package domainerrors

import "errors"

// Code identifies the class of a domain error.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeBusy         Code = "busy"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal"
)

// Error is a coded domain error with a user-safe message.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

// New creates a coded domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded domain error that preserves the underlying cause
// for errors.Is/As chains while keeping Message user-safe.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, wrapped: cause}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal
// so unexpected errors never leak internals to the caller.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the user-safe message from an error chain, falling back
// to a generic message for uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
