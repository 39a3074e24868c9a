// Package errors provides the error kinds surfaced by the ledger core.
// All service-layer errors should use AppError so callers can classify them
// and the HTTP layer can render consistent responses that never leak storage
// details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind groups error codes into the categories callers act on.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindStorage           Kind = "storage"
	KindRateLimited       Kind = "rate_limited"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Kind       Kind   `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Storage wraps a persistence failure. Errors that already carry an
// AppError are returned unchanged.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return Wrap(ErrStorage, err)
}

// KindOf returns the kind of err, or an empty Kind for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err reports a missing entity.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidTransition reports whether err is an illegal status change.
func IsInvalidTransition(err error) bool { return KindOf(err) == KindInvalidTransition }

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool { return KindOf(err) == KindStorage }

// General errors.
var (
	ErrValidation        = &AppError{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound          = &AppError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransition = &AppError{Kind: KindInvalidTransition, Code: "INVALID_TRANSITION", Message: "Invalid status transition", StatusCode: http.StatusConflict}
	ErrStorage           = &AppError{Kind: KindStorage, Code: "STORAGE_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrRateLimited       = &AppError{Kind: KindRateLimited, Code: "RATE_LIMITED", Message: "Too many requests, please try again later", StatusCode: http.StatusTooManyRequests}
)

// Entity errors.
var (
	ErrPartyNotFound          = &AppError{Kind: KindNotFound, Code: "PARTY_NOT_FOUND", Message: "Party not found", StatusCode: http.StatusNotFound}
	ErrProductNotFound        = &AppError{Kind: KindNotFound, Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
	ErrOrderNotFound          = &AppError{Kind: KindNotFound, Code: "ORDER_NOT_FOUND", Message: "Order not found", StatusCode: http.StatusNotFound}
	ErrReferenceOrderNotFound = &AppError{Kind: KindNotFound, Code: "REFERENCE_ORDER_NOT_FOUND", Message: "Reference order not found", StatusCode: http.StatusNotFound}
)
