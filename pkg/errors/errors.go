// Package errors provides structured error types for biasplot.
//
// Errors carry a machine-readable [Code] so callers can tell fatal
// configuration problems apart from bad input or provider failures:
//   - INVALID_CONFIG, MISSING_COLUMN, MISSING_BASELINE, NO_COMMON_OCCUPATIONS,
//     LABEL_MISMATCH, DUPLICATE_KEY: configuration errors, always fatal
//   - INVALID_INPUT, PARSE: malformed data in a single file or reply
//   - PROVIDER: an LLM API call failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingColumn, "%s missing columns: %v", path, cols)
//	if errors.Is(err, errors.ErrCodeMissingColumn) {
//	    // abort the run
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open baseline %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeMissingColumn       Code = "MISSING_COLUMN"
	ErrCodeMissingBaseline     Code = "MISSING_BASELINE"
	ErrCodeNoCommonOccupations Code = "NO_COMMON_OCCUPATIONS"
	ErrCodeLabelMismatch       Code = "LABEL_MISMATCH"
	ErrCodeDuplicateKey        Code = "DUPLICATE_KEY"
	ErrCodeFileNotFound        Code = "FILE_NOT_FOUND"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeParse         Code = "PARSE"

	// External errors
	ErrCodeProvider Code = "PROVIDER"

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

// IsConfig reports whether err is a configuration error that must abort the run.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeMissingColumn, ErrCodeMissingBaseline,
		ErrCodeNoCommonOccupations, ErrCodeLabelMismatch, ErrCodeDuplicateKey,
		ErrCodeFileNotFound:
		return true
	}
	return false
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

// Warning is a data-quality problem that does not stop the run.
type Warning struct {
	Code    Code
	Message string
}

// Warnf creates a Warning with a formatted message.
func Warnf(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
