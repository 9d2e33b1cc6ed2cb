package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode classifies an application error for logging and HTTP mapping.
type ErrorCode string

const (
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"

	CodeUserNotFound  ErrorCode = "USER_NOT_FOUND"
	CodeGameNotFound  ErrorCode = "GAME_NOT_FOUND"
	CodeEventNotFound ErrorCode = "EVENT_NOT_FOUND"

	CodeSessionInvalid ErrorCode = "SESSION_INVALID"

	CodeDatabase ErrorCode = "DATABASE_ERROR"
	CodeCache    ErrorCode = "CACHE_ERROR"

	CodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	CodeChainSubmission   ErrorCode = "CHAIN_SUBMISSION_FAILED"
	CodeChainAPI          ErrorCode = "CHAIN_API_ERROR"
)

// AppError is a coded error carrying the original cause for logs while the
// HTTP layer exposes only Message.
type AppError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Cause     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Timestamp: time.Now()}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// HTTPStatus maps an error code to the status the API surface uses. Codes the
// API never exposes directly collapse to 500.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound, CodeUserNotFound, CodeGameNotFound, CodeEventNotFound:
		return http.StatusNotFound
	case CodeUnauthorized, CodeSessionInvalid:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case CodeChainAPI, CodeChainSubmission:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
