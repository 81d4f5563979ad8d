package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "CONFLICT"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInconsistent       ErrorCode = "INCONSISTENT"
	ErrUnavailable        ErrorCode = "UNAVAILABLE"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER"
	ErrTooManyRequests    ErrorCode = "TOO_MANY_REQUESTS"

	// token errors
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
)

// AppError is the error type services hand back to controllers. Message is
// safe to show to callers; Err keeps the underlying cause for logs.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is an AppError (at any depth) carrying code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
