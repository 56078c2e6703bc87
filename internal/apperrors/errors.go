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

// ErrBusinessRule indicates a well-formed request that the ledger refuses to execute.
var ErrBusinessRule = errors.New("business rule violation")

// ErrUnauthorized indicates missing or rejected credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrExternal indicates that an external collaborator failed or timed out.
var ErrExternal = errors.New("external dependency error")

// Validation errors. Raised before any store access.
var (
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be a positive finite number", ErrValidation)
	ErrInvalidCurrency   = fmt.Errorf("%w: currency is not supported", ErrValidation)
	ErrInvalidHolderName = fmt.Errorf("%w: holder name must be alphabetic with optional spaces or hyphens", ErrValidation)
	ErrSameSubAccount    = fmt.Errorf("%w: source and destination must differ", ErrValidation)
)

// Lookup errors.
var (
	ErrNoMatchingSubAccount = fmt.Errorf("%w: no sub-account for account and currency", ErrNotFound)
)

// Business rule violations.
var (
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient funds", ErrBusinessRule)
	ErrCurrencyMismatch    = fmt.Errorf("%w: currency mismatch", ErrBusinessRule)
	ErrDuplicateAccount    = fmt.Errorf("%w: account holder name already registered", ErrDuplicate)
	ErrDuplicateSubAccount = fmt.Errorf("%w: sub-account for currency already exists", ErrDuplicate)
)

// External dependency errors.
var (
	ErrRateUnavailable = fmt.Errorf("%w: exchange rate unavailable", ErrExternal)
	ErrAlertSend       = fmt.Errorf("%w: alert could not be delivered", ErrExternal)
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Repositories use it for infrastructure failures that have no domain meaning.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// HTTPStatus maps an error from any layer to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrBusinessRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrExternal):
		return http.StatusServiceUnavailable
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
