package models

import (
	"net/http"

	"github.com/pkg/errors"
)

type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
)

// DomainError is the error contract handlers return to controllers. The code
// maps to an HTTP status, Fields carries per-field validation messages.
type DomainError struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string
}

func (e DomainError) Error() string {
	return e.Message
}

func (e DomainError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func NewUnauthorizedError(message string) error {
	return DomainError{Code: ErrCodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) error {
	return DomainError{Code: ErrCodeForbidden, Message: message}
}

func NewNotFoundError(message string) error {
	return DomainError{Code: ErrCodeNotFound, Message: message}
}

func NewConflictError(message string) error {
	return DomainError{Code: ErrCodeConflict, Message: message}
}

func NewValidationError(message string, fields map[string]string) error {
	return DomainError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

// AsDomainError unwraps err down to a DomainError when one is in the chain.
func AsDomainError(err error) (DomainError, bool) {
	var domainErr DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return DomainError{}, false
}
