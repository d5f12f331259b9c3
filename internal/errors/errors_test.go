package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
	}{
		{NotFound("Friend request not found"), http.StatusNotFound},
		{Unauthorized("Login first"), http.StatusUnauthorized},
		{Conflict("Users are already friends"), http.StatusBadRequest},
		{InvalidOperation("You cannot send a friend request to yourself"), http.StatusBadRequest},
		{ValidationError("status", "Invalid status"), http.StatusBadRequest},
		{InternalError("Internal Server Error"), http.StatusInternalServerError},
		{RateLimited(""), http.StatusTooManyRequests},
		{ServiceUnavailable("Rate limiter"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}

	assert.Equal(t, http.StatusInternalServerError, ErrorCode("SOMETHING_ELSE").StatusCode())
}

func TestAPIErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: Friend request not found", NotFound("Friend request not found").Error())
	assert.Equal(t, "VALIDATION_ERROR: required (field: email)", ValidationError("email", "required").Error())
	assert.Equal(t, "rate limit exceeded", RateLimited("").Message)
	assert.Equal(t, "Rate limiter is temporarily unavailable", ServiceUnavailable("Rate limiter").Message)
}

func TestDetailsStayOutOfError(t *testing.T) {
	err := InternalError("Internal Server Error").WithDetails("pq: connection refused")
	assert.Equal(t, "pq: connection refused", err.Details)
	assert.NotContains(t, err.Error(), "connection refused")
}
