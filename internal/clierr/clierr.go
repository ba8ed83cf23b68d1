// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripted consumers.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants: uppercase, underscore-separated, stable across minor versions.
const (
	TaskNotFound         = "TASK_NOT_FOUND"
	DataDirNotFound      = "DATA_DIR_NOT_FOUND"
	DataDirAlreadyExists = "DATA_DIR_ALREADY_EXISTS"
	InvalidInput         = "INVALID_INPUT"
	InvalidTitle         = "INVALID_TITLE"
	InvalidFrequency     = "INVALID_FREQUENCY"
	InvalidStatus        = "INVALID_STATUS"
	InvalidDate          = "INVALID_DATE"
	InvalidTaskID        = "INVALID_TASK_ID"
	NoChanges            = "NO_CHANGES"
	ConfirmationReq      = "CONFIRMATION_REQUIRED"
	NothingToExport      = "NOTHING_TO_EXPORT"
	StoreError           = "STORE_ERROR"
	InternalError        = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any

	// cause is the wrapped error, if any.
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose message is prefixed onto the cause's message.
// Wrapping an existing *Error keeps its code.
func Wrap(code, prefix string, cause error) *Error {
	var existing *Error
	if errors.As(cause, &existing) {
		code = existing.Code
	}
	return &Error{Code: code, Message: prefix + ": " + cause.Error(), cause: cause}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
