package common

import "errors"

// Error codes surfaced by the pricing and cart engine. The transport layer
// owns user-visible messaging; these codes are the stable contract.
const (
	CodeInvalidBasePrice     = "INVALID_BASE_PRICE"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeInvalidDimensions    = "INVALID_DIMENSIONS"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// ErrorCode extracts the engine error code from err, or "" when none applies.
func ErrorCode(err error) string {
	var target *AppError
	if errors.As(err, &target) && target != nil {
		return target.Code
	}
	return ""
}
