// Package errors provides structured error types for the signal-processing
// core. Every engine failure carries a stable error code so callers can
// distinguish validation problems from range misses and numerical failures
// without parsing message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies the category of a processing error
type Code string

// Error codes for the processing core
const (
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRangeError       Code = "RANGE_ERROR"
	CodeFilterDesign     Code = "FILTER_DESIGN_ERROR"
	CodeUnknownOperation Code = "UNKNOWN_OPERATION"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// ProcessingError represents a structured processing failure
type ProcessingError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface
func (e *ProcessingError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error, if any
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// New creates a new ProcessingError with the given code and message
func New(code Code, message string) *ProcessingError {
	return &ProcessingError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new ProcessingError with a formatted message
func Newf(code Code, format string, args ...any) *ProcessingError {
	return &ProcessingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a ProcessingError that wraps an underlying error while
// keeping the underlying error's text visible to the caller
func Wrap(code Code, err error, message string) *ProcessingError {
	return &ProcessingError{
		Code:    code,
		Message: fmt.Sprintf("%s: %s", message, err.Error()),
		Err:     err,
	}
}

// Helper constructors for common error categories

// Validation creates a validation error
func Validation(format string, args ...any) *ProcessingError {
	return Newf(CodeValidationFailed, format, args...)
}

// Range creates a range error for time windows outside the available data
func Range(format string, args ...any) *ProcessingError {
	return Newf(CodeRangeError, format, args...)
}

// FilterDesign creates a filter design error
func FilterDesign(err error) *ProcessingError {
	return Wrap(CodeFilterDesign, err, "Filter design error")
}

// UnknownOperation creates an error for an unrecognized operation name
func UnknownOperation(name string) *ProcessingError {
	return Newf(CodeUnknownOperation, "Unknown operation: %s", name)
}

// Internal creates an internal error from an unexpected failure
func Internal(err error) *ProcessingError {
	return Wrap(CodeInternal, err, "Processing error")
}

// CodeOf returns the error code of err, or CodeInternal when err is not a
// ProcessingError
func CodeOf(err error) Code {
	var pe *ProcessingError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return CodeInternal
}

// IsRange reports whether err is a range error
func IsRange(err error) bool {
	return CodeOf(err) == CodeRangeError
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidationFailed
}
