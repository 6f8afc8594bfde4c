// Package errors defines the application-level error taxonomy. Every failure
// this core returns is one of these kinds so callers can branch on the kind
// programmatically; the delivery layer decides how each kind is rendered.
package errors

import (
	"net/http"

	"warden/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code hint for the boundary layer
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code hint
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// invalidLoginMessage is shared by ErrUserNotFound and ErrInvalidCredentials.
// The two kinds stay distinct for logging, but an end user must not be able to
// tell an unknown username apart from a wrong password.
const invalidLoginMessage = "invalid username or password"

// Predefined error types
var (
	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"the submitted input is incomplete or malformed",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"passwords do not match",
		"",
	)

	// Registration-related errors
	ErrDuplicateUser = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_USER",
		"that username is already taken",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"there was a problem processing the password",
		"",
	)

	// Authentication-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusUnauthorized,
		"USER_NOT_FOUND",
		invalidLoginMessage,
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		invalidLoginMessage,
		"",
	)

	// ErrStorageInvariant signals that the credential store broke its own
	// uniqueness guarantee. Fatal to the operation; never swallowed.
	ErrStorageInvariant = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_INVARIANT_VIOLATION",
		"credential store integrity violation",
		"",
	)
)

// StorageExecuteError represents a credential-store execution failure,
// implementing the AppError interface. It carries the underlying cause for
// diagnostics; the cause never contains plaintext credentials.
type StorageExecuteError struct {
	err     error
	details string
}

// NewStorageExecuteError creates a storage-related error
func NewStorageExecuteError(err error, details string) AppError {
	return &StorageExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageExecuteError) Error() string {
	return errors.Wrap(e.err, "credential store execution failed").Error()
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *StorageExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code hint
func (e *StorageExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StorageExecuteError) ErrorCode() string {
	return "STORAGE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *StorageExecuteError) Message() string {
	return "the service is temporarily unavailable, please try again"
}

// Details returns detailed error information
func (e *StorageExecuteError) Details() string {
	return e.details
}
