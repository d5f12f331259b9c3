// Package errors defines the error envelope returned by the HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable "code" of an error response
type ErrorCode string

const (
	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrConflict         ErrorCode = "CONFLICT"
	ErrValidation       ErrorCode = "VALIDATION_ERROR"
	ErrBadRequest       ErrorCode = "BAD_REQUEST"
	ErrInvalidOperation ErrorCode = "INVALID_OPERATION"
	ErrInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrRateLimited      ErrorCode = "RATE_LIMITED"
	ErrServiceUnavail   ErrorCode = "SERVICE_UNAVAILABLE"
)

// StatusCode is the HTTP status sent with the code. Relationship conflicts
// answer 400 because the web client treats every rejected request the same.
func (e ErrorCode) StatusCode() int {
	switch e {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrConflict, ErrValidation, ErrBadRequest, ErrInvalidOperation:
		return http.StatusBadRequest
	case ErrRateLimited:
		return http.StatusTooManyRequests
	case ErrServiceUnavail:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// APIError carries everything util.RespondWithAPIError needs. Details are
// logged server-side and never serialized to the client.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details string    `json:"-"`
	Status  int       `json:"-"`
}

func (e *APIError) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Field != "" {
		s += " (field: " + e.Field + ")"
	}
	return s
}

// WithDetails attaches a log-only explanation
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}

func build(code ErrorCode, message string) *APIError {
	return &APIError{Code: code, Message: message, Status: code.StatusCode()}
}

func NotFound(message string) *APIError         { return build(ErrNotFound, message) }
func Unauthorized(message string) *APIError     { return build(ErrUnauthorized, message) }
func Conflict(message string) *APIError         { return build(ErrConflict, message) }
func InvalidOperation(message string) *APIError { return build(ErrInvalidOperation, message) }
func BadRequest(message string) *APIError       { return build(ErrBadRequest, message) }
func InternalError(message string) *APIError    { return build(ErrInternalError, message) }

// ValidationError blames a single request field
func ValidationError(field, message string) *APIError {
	e := build(ErrValidation, message)
	e.Field = field
	return e
}

func RateLimited(message string) *APIError {
	if message == "" {
		message = "rate limit exceeded"
	}
	return build(ErrRateLimited, message)
}

// ServiceUnavailable reports a backing service (database, Redis) as down
func ServiceUnavailable(service string) *APIError {
	return build(ErrServiceUnavail, fmt.Sprintf("%s is temporarily unavailable", service))
}
