package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes returned to callers. One code per failure category.
const (
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeInsufficientPrivilege = "INSUFFICIENT_PRIVILEGE"
	CodeValidationFailed      = "VALIDATION_FAILED"
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeUpstreamFailure       = "UPSTREAM_FAILURE"
	CodeNotificationFailure   = "NOTIFICATION_FAILURE"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

func NewInsufficientPrivilege(message string) error {
	return NewDomainError(CodeInsufficientPrivilege, message, http.StatusForbidden, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewUpstreamFailure(store string, err error) error {
	return &DomainError{
		Code:       CodeUpstreamFailure,
		Message:    fmt.Sprintf("%s call failed", store),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewDivergenceFailure is an upstream failure after an earlier write
// already committed: the caller must be told the two stores may now
// disagree.
func NewDivergenceFailure(store string, err error) error {
	return &DomainError{
		Code:       CodeUpstreamFailure,
		Message:    fmt.Sprintf("%s call failed after a prior write committed", store),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"divergent": true},
		Err:        err,
	}
}

func NewNotificationFailure(err error) error {
	return &DomainError{
		Code:       CodeNotificationFailure,
		Message:    "credential notification could not be delivered",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeUpstreamFailure,
		Message:    "upstream call failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
