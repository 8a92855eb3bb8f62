// Package errors provides structured error types for the Shadegraph editor.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the TUI, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-visible rejection notices without stack traces
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The editor distinguishes rejected edits (type mismatch, read-only
// scope, missing implementation) from genuine failures. Rejected edits
// surface as transient notices in the UI and never change state;
// failures propagate as errors.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTypeMismatch, "cannot connect %s to %s", a, b)
//	if errors.Is(err, errors.ErrCodeTypeMismatch) {
//	    // Show rejection notice
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "rebuild graph for %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rejected edits (no state change, surfaced as UI notices)
	ErrCodeTypeMismatch     Code = "TYPE_MISMATCH"
	ErrCodePinConnected     Code = "PIN_CONNECTED"
	ErrCodeNoImplementation Code = "NO_IMPLEMENTATION"
	ErrCodeReadOnly         Code = "READ_ONLY"
	ErrCodeRejectedEdit     Code = "REJECTED_EDIT"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidName     Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeNodeNotFound     Code = "NODE_NOT_FOUND"
	ErrCodePinNotFound      Code = "PIN_NOT_FOUND"
	ErrCodeDocumentNotFound Code = "DOCUMENT_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRejection reports whether err represents a rejected edit: an action
// the editor declined without changing any state. The UI shows these as
// transient notices rather than errors.
func IsRejection(err error) bool {
	switch GetCode(err) {
	case ErrCodeTypeMismatch, ErrCodePinConnected, ErrCodeNoImplementation,
		ErrCodeReadOnly, ErrCodeRejectedEdit:
		return true
	}
	return false
}

// Message returns the human-readable message without the code prefix,
// falling back to err.Error() for plain errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
