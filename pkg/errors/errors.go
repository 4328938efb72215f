// Package errors provides structured error types for flametower.
//
// Every failure the library reports falls into one of three families:
//
//   - Structural errors (INVALID_GRAPH): the input node/edge list does not
//     describe a single tree. Fatal; no rendering is attempted.
//   - State consistency errors (INTERNAL_STATE): an invariant of the render
//     engine was violated. These indicate a defect and must be surfaced,
//     never recovered from silently.
//   - Configuration errors (UNSUPPORTED_RENDERER, INVALID_CONFIG): an unknown
//     render strategy or an invalid option value.
//
// Input problems at the CLI/pipeline boundary use the INVALID_* and
// FILE_NOT_FOUND codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidGraph) {
//	    // reject the input
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Configuration errors
	ErrCodeUnsupportedRenderer Code = "UNSUPPORTED_RENDERER"

	// Internal errors
	ErrCodeInternalState Code = "INTERNAL_STATE"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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

// Structural reports a malformed input graph.
func Structural(format string, args ...any) *Error {
	return New(ErrCodeInvalidGraph, format, args...)
}

// StateConsistency reports a violated render-engine invariant.
func StateConsistency(format string, args ...any) *Error {
	return New(ErrCodeInternalState, format, args...)
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatalDefect reports whether err signals a bug in the engine rather than
// bad input.
func IsFatalDefect(err error) bool {
	return Is(err, ErrCodeInternalState)
}
