package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Token Ledger (TOK) ----

func ErrInsufficientBalance(address string) *AppError {
	return New("TOK_001", fmt.Sprintf("Insufficient balance for %s", address), http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("TOK_002", "Invalid amount", http.StatusBadRequest)
}

// ---- Events & Attendance (EVT) ----

func ErrEventNotFound(eventID int64) *AppError {
	return New("EVT_001", fmt.Sprintf("Event %d not found", eventID), http.StatusNotFound)
}

func ErrDuplicateAttendance(eventID int64, address string) *AppError {
	return New("EVT_002", fmt.Sprintf("Attendance for %s already recorded on event %d", address, eventID), http.StatusConflict)
}

// ---- Generic Lookups (LED) ----

func ErrNotFound(entity string) *AppError {
	return New("LED_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrNotInitialized() *AppError {
	return New("LED_002", "Ledger not initialized", http.StatusServiceUnavailable)
}

// ---- Authentication & Authorization (AUTH) ----

func ErrWalletAddressRequired() *AppError {
	return New("AUTH_001", "Wallet address required", http.StatusUnauthorized)
}

func ErrRoleForbidden(role string) *AppError {
	return New("AUTH_002", fmt.Sprintf("Role %s is not permitted for this operation", role), http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a TOK_002-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("TOK_002", message, http.StatusBadRequest)
}
