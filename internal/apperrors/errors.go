package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation clashes with the current state of another resource,
// e.g. deleting a category that still has products.
var ErrConflict = errors.New("resource conflict")

// Errors raised by the currency-conversion pipeline.
var (
	// ErrNetwork: the rate provider could not be reached, timed out, or answered with a non-2xx status.
	ErrNetwork = errors.New("rate provider network error")
	// ErrParse: the rate provider answered with a body we could not understand.
	ErrParse = errors.New("rate provider response parse error")
	// ErrMissingRate: the provider response has no rate for the requested currency.
	ErrMissingRate = errors.New("exchange rate missing for currency")
	// ErrInvalidInput: a priced item or currency code is malformed.
	ErrInvalidInput = errors.New("invalid input")
)

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound with errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation with errors.Is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}
