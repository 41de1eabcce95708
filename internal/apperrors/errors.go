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

// ErrConflict indicates that the resource changed state underneath the caller.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected failure in a collaborator (store, cache, clock).
var ErrInternal = errors.New("internal error")

// ErrorCode is the machine readable category attached to a failed ledger operation.
type ErrorCode string

const (
	CodeEntityNotFound   ErrorCode = "ENTITY_NOT_FOUND"
	CodeInvalidBooks     ErrorCode = "INVALID_BOOKS"
	CodeInvalidAccounts  ErrorCode = "INVALID_ACCOUNTS"
	CodeJournalUnbalance ErrorCode = "JOURNAL_UNBALANCED"
	CodeInvalidLine      ErrorCode = "INVALID_LINE"
	CodeJournalNotFound  ErrorCode = "JOURNAL_NOT_FOUND"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodePeriodLocked     ErrorCode = "PERIOD_LOCKED"
	CodeApprovalRequired ErrorCode = "APPROVAL_REQUIRED"
	CodeAlreadyReversed  ErrorCode = "ALREADY_REVERSED"
	CodeRateNotFound     ErrorCode = "RATE_NOT_FOUND"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message. A nil err on a 5xx code
// still unwraps to ErrInternal.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= http.StatusInternalServerError {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// StatusOf returns the status code of the first AppError in err's chain, or 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
