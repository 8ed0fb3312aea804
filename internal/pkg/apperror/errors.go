// Package apperror ошибки приложения с кодом и сообщением для клиента.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeForbidden  ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeStorage    ErrorCode = "STORAGE_ERROR"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// AppError ошибка с кодом. Message показывается клиенту, Cause только в логах.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return Wrap(nil, code, message)
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: statusFor(code),
		Cause:      err,
	}
}

func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки; для ошибок без кода ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Is сообщает, есть ли в цепочке AppError с одним из кодов.
func Is(err error, codes ...ErrorCode) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	for _, code := range codes {
		if appErr.Code == code {
			return true
		}
	}
	return false
}

func IsNotFound(err error) bool   { return Is(err, ErrCodeNotFound) }
func IsForbidden(err error) bool  { return Is(err, ErrCodeForbidden) }
func IsValidation(err error) bool { return Is(err, ErrCodeValidation) }
func IsBadRequest(err error) bool { return Is(err, ErrCodeBadRequest, ErrCodeValidation) }

// StatusOf возвращает HTTP статус для ошибки, для неизвестных ошибок 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// MessageOf возвращает сообщение для клиента.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
