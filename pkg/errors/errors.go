// Package errors provides structured, code-carrying errors shared by the
// parser, store and collector packages.
//
// Every failure surfaced by the engine is a *StructuredError so callers can
// branch on the Code rather than on message text:
//
//	rec, err := st.Query(store.CategoryCPU, "n1.txt")
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    // artifact was never collected
//	}
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a StructuredError.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a missing artifact, category directory or node snapshot.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeMalformedArtifact indicates a parse-time structural violation.
	ErrCodeMalformedArtifact ErrorCode = "MALFORMED_ARTIFACT"
	// ErrCodeStructuralViolation indicates a database instance with a broken directory layout.
	ErrCodeStructuralViolation ErrorCode = "STRUCTURAL_VIOLATION"
	// ErrCodeInvalidCategory indicates a category outside the supported set.
	ErrCodeInvalidCategory ErrorCode = "INVALID_CATEGORY"
	// ErrCodeAlreadyExists indicates an attempt to create something that is present.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeInvalidRequest indicates bad caller input (filenames, flags).
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeTimeout indicates a deadline or cancellation.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeUnavailable indicates a remote collaborator could not be reached.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
	// ErrCodeInternal indicates an unexpected local failure (I/O, permissions).
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error with a machine readable code and optional context.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a StructuredError around an existing error.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext creates a StructuredError carrying additional key/value context.
func WithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// CodeOf returns the code of the first StructuredError in the chain,
// or an empty code if there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
