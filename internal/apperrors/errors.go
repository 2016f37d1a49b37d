package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// AppError - ошибка приложения с HTTP-кодом
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду, чтобы копии с деталями совпадали с исходной ошибкой
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails возвращает копию ошибки с деталями, предопределённые ошибки не меняются
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Предопределенные ошибки
var (
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)

	ErrValidation    = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
	ErrUsernameTaken = New(CodeUsernameTaken, "Please use a different username", http.StatusConflict)
	ErrEmailTaken    = New(CodeEmailTaken, "There is already an account registered to the provided email", http.StatusConflict)

	ErrUserNotFound    = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrListingNotFound = New(CodeListingNotFound, "Listing not found", http.StatusNotFound)

	ErrNotListingOwner  = New(CodeNotListingOwner, "Only the listing owner can do this", http.StatusForbidden)
	ErrOwnerCannotLeave = New(CodeOwnerCannotLeave, "The listing owner cannot leave the listing", http.StatusConflict)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidation.WithDetails(details)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// From приводит произвольную ошибку к AppError, неизвестные считаются внутренними
func From(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
