package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies an application error into one of the client-visible
// categories.
type ErrorType string

const (
	// ErrorTypeInvalidArgument indicates malformed input: a bad identifier,
	// an out-of-range rating, an unrecognized enum value.
	ErrorTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	// ErrorTypeNotFound indicates a referenced entity does not exist.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeConflict indicates a uniqueness violation.
	ErrorTypeConflict ErrorType = "CONFLICT"
	// ErrorTypeInternal indicates an unexpected storage or transaction failure.
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error.
func New(errorType ErrorType, message string) error {
	return &AppError{Type: errorType, Message: message}
}

// Wrap wraps an error with an application error.
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{Type: errorType, Message: message, Err: err}
}

// InvalidArgument creates an invalid-argument error.
func InvalidArgument(message string) error {
	return New(ErrorTypeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid-argument error with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return New(ErrorTypeInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound creates a not-found error.
func NotFound(message string) error {
	return New(ErrorTypeNotFound, message)
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return New(ErrorTypeNotFound, fmt.Sprintf(format, args...))
}

// Conflict creates a conflict error.
func Conflict(message string) error {
	return New(ErrorTypeConflict, message)
}

// Conflictf creates a conflict error with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return New(ErrorTypeConflict, fmt.Sprintf(format, args...))
}

// Internal creates an internal error.
func Internal(message string) error {
	return New(ErrorTypeInternal, message)
}

// typeOf extracts the application error type, or "" for unclassified errors.
func typeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsInvalidArgument checks if an error is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return typeOf(err) == ErrorTypeInvalidArgument
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return typeOf(err) == ErrorTypeNotFound
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return typeOf(err) == ErrorTypeConflict
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return typeOf(err) == ErrorTypeInternal
}

// IsClassified reports whether err already carries one of the application
// error types. Cascades re-signal classified errors as-is and wrap everything
// else as INTERNAL.
func IsClassified(err error) bool {
	return typeOf(err) != ""
}

// IsDuplicateError checks if an error is a storage duplicate-key error.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "duplicate entry")
}
