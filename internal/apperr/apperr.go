// Package apperr defines the error taxonomy shared by the expense engine,
// the storage layer and the HTTP boundary.
//
// Every failure a client can observe falls into one of four classes:
// validation (malformed or inconsistent input), authorization (caller or a
// referenced name is not a group member), not-found (an identifier does not
// resolve) and storage (persistence failure). Anything else surfaces as a
// generic server error without internal detail.
package apperr

import (
	"errors"
	"fmt"
)

// Class identifies the failure class of an Error.
type Class int

const (
	// Validation covers malformed, missing or inconsistent input.
	Validation Class = iota
	// Authorization covers callers and referenced names that are not
	// members of the target group, and ownership failures.
	Authorization
	// NotFound covers identifiers that do not resolve.
	NotFound
	// Storage covers underlying persistence failures.
	Storage
)

// Error is a classified application error with a client-safe message.
type Error struct {
	Class Class
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a Validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Class: Validation, Msg: fmt.Sprintf(format, args...)}
}

// Authorizationf builds an Authorization error.
func Authorizationf(format string, args ...any) *Error {
	return &Error{Class: Authorization, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Class: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// Storagef wraps a persistence failure with a client-safe message.
func Storagef(err error, format string, args ...any) *Error {
	return &Error{Class: Storage, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ClassOf reports the class of err and whether err is a classified Error.
func ClassOf(err error) (Class, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return 0, false
}

// Message returns the client-safe message of a classified error, or the
// fallback for anything unclassified.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}
