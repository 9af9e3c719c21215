// Package errors provides structured error types for contactsheet.
//
// Every failure that reaches the CLI carries a machine-readable [Code] so the
// command layer can tell configuration problems (reported before any work
// starts) apart from an empty render tree or an unreadable thumbnail.
//
// # Error Codes
//
//   - INVALID_*: Configuration and input validation failures
//   - NOT_FOUND / NO_IMAGES: Missing folders or nothing to composite
//   - IMAGE_DECODE: A thumbnail could not be read
//   - INTERNAL_ERROR / UNSUPPORTED: Write failures and unsupported platforms
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoImages, "no renders found under %s", dir)
//	if errors.Is(err, errors.ErrCodeNoImages) {
//	    // Nothing to composite
//	}
//
//	err := errors.Wrap(errors.ErrCodeImageDecode, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeNoImages    Code = "NO_IMAGES"
	ErrCodeImageDecode Code = "IMAGE_DECODE"

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

// IsFatalConfig reports whether err belongs to the configuration/environment
// category, which must stop the process before any core work starts.
func IsFatalConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeUnsupported:
		return true
	}
	return false
}
