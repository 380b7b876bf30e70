package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, machine-readable error kind.
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries an error code, a human-readable message and, for
// validation failures, the per-field breakdown.
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a cause to an AppError. The cause is never surfaced to
// API callers, only logged.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFound builds a NOT_FOUND error for a named entity.
func NotFound(entity string) *AppError {
	return New(ErrCodeNotFound, entity+" not found")
}

// Conflict builds a CONFLICT error.
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message)
}

// Unauthorized builds an UNAUTHORIZED error.
func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message)
}

// Forbidden builds a FORBIDDEN error.
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message)
}

// Internal wraps an unexpected failure without leaking its details.
func Internal(err error) *AppError {
	return Wrap(ErrCodeInternal, "Server Error", err)
}

// Validation builds a VALIDATION_ERROR carrying field errors.
func Validation(fields ...FieldError) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: "Validation Error", Fields: fields}
}

// ValidationField is shorthand for a single-field validation error.
func ValidationField(field, message string) *AppError {
	return Validation(FieldError{Field: field, Message: message})
}

// CodeOf returns the error's code, or INTERNAL_ERROR for plain errors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsNotFound checks if err is a NOT_FOUND AppError.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsConflict checks if err is a CONFLICT AppError.
func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

// IsValidation checks if err is a VALIDATION_ERROR AppError.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}
