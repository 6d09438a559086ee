// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is checks across layers.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateReview = errors.New("duplicate review")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

// Error codes rendered in the response body.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeDuplicateReview = "DUPLICATE_REVIEW"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// AppError is the error type returned by services. Status is the HTTP status
// the handler layer should answer with.
type AppError struct {
	Code    string
	Message string
	Status  int
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && !isSentinel(e.Err) {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func isSentinel(err error) bool {
	switch err {
	case ErrNotFound, ErrInvalidInput, ErrDuplicateReview, ErrUnauthorized, ErrForbidden, ErrConflict, ErrInternal:
		return true
	}
	return false
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// Validation reports every violated field at once.
func Validation(fields []FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "validation failed",
		Status:  http.StatusBadRequest,
		Details: fields,
		Err:     ErrInvalidInput,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

func DuplicateReview() *AppError {
	return &AppError{
		Code:    CodeDuplicateReview,
		Message: "product already reviewed",
		Status:  http.StatusBadRequest,
		Err:     ErrDuplicateReview,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal wraps an unexpected failure. The cause is kept for logging and
// never shown to clients.
func Internal(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// From returns err as an *AppError, wrapping anything unknown as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Fields returns the field errors attached to a validation error, if any.
func Fields(err error) []FieldError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if fields, ok := appErr.Details.([]FieldError); ok {
			return fields
		}
	}
	return nil
}
