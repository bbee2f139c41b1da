// Package apperr defines the error taxonomy shared by command handlers.
//
// Every failure a handler can produce wraps one of the kind sentinels so
// the dispatcher can classify it, while Error() stays the exact message
// surfaced to the caller.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request or response that fails its schema.
	ErrValidation = errors.New("validation")
	// ErrNotFound marks a referenced list or word that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate marks an insert on an already-present normalized key.
	ErrDuplicate = errors.New("duplicate")
	// ErrStore marks an underlying persistence failure.
	ErrStore = errors.New("store")
	// ErrProtocol marks an unknown action or malformed envelope.
	ErrProtocol = errors.New("protocol")
)

// Error carries a caller-facing message together with its taxonomy kind.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

// Unwrap exposes the kind sentinel to errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// New creates an Error of the given kind.
func New(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Validation creates a schema violation error.
func Validation(format string, args ...any) *Error {
	return New(ErrValidation, format, args...)
}

// NotFound creates a missing list or word error.
func NotFound(format string, args ...any) *Error {
	return New(ErrNotFound, format, args...)
}

// Duplicate creates an already-present key error.
func Duplicate(format string, args ...any) *Error {
	return New(ErrDuplicate, format, args...)
}

// Protocol creates a malformed envelope error.
func Protocol(format string, args ...any) *Error {
	return New(ErrProtocol, format, args...)
}

// Store wraps a persistence failure, keeping the underlying message.
// Errors already carrying a taxonomy kind pass through unchanged.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var kinded *Error
	if errors.As(err, &kinded) {
		return err
	}
	return New(ErrStore, "%v", err)
}
