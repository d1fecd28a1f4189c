// Package errors provides the structured error type used across the
// Patrimonio API. Service-layer code returns *AppError values so
// handlers can map failures to consistent JSON responses without
// leaking internals.
package errors

import "net/http"

// AppError is a structured application error with a stable code, a
// human-readable message, an HTTP status, and an optional wrapped
// internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Ledger errors.
var (
	ErrEmptyExport = &AppError{Code: "EMPTY_EXPORT", Message: "No transactions to export", StatusCode: http.StatusConflict}
)

// Rate errors.
var (
	ErrInvalidRateKey = &AppError{Code: "INVALID_RATE_KEY", Message: "Unknown rate key", StatusCode: http.StatusBadRequest}
)
