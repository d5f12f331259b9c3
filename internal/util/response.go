package util

import (
	"net/http"

	"github.com/devfinds/devfinds/internal/errors"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Success is always false.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondWithAPIError aborts the request with apiErr. Client errors are logged
// at warn and server errors at error, with Details only ever in the log.
func RespondWithAPIError(c *gin.Context, apiErr *errors.APIError) {
	logAPIError(c, apiErr)
	c.AbortWithStatusJSON(apiErr.Status, ErrorResponse{
		Code:    string(apiErr.Code),
		Message: apiErr.Message,
		Field:   apiErr.Field,
	})
}

func logAPIError(c *gin.Context, apiErr *errors.APIError) {
	var log func(string, ...zap.Field)
	switch {
	case apiErr.Status >= http.StatusInternalServerError:
		log = logger.Log.Error
	case apiErr.Status >= http.StatusBadRequest:
		log = logger.Log.Warn
	default:
		return
	}

	fields := append(make([]zap.Field, 0, 6),
		zap.String("code", string(apiErr.Code)),
		zap.String("message", apiErr.Message),
		zap.String("route", c.FullPath()),
		logger.WithStatus(apiErr.Status),
	)
	if id := c.GetString(RequestIDKey); id != "" {
		fields = append(fields, logger.WithRequestID(id))
	}
	if apiErr.Details != "" {
		fields = append(fields, zap.String("details", apiErr.Details))
	}
	log("API error", fields...)
}

// RespondSuccess writes body with "success": true added
func RespondSuccess(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}

// RespondUnauthorized answers 401, "Login first" unless a message is given
func RespondUnauthorized(c *gin.Context, message ...string) {
	msg := "Login first"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	RespondWithAPIError(c, errors.Unauthorized(msg))
}

func RespondBadRequest(c *gin.Context, message string) {
	RespondWithAPIError(c, errors.BadRequest(message))
}

// RespondValidationError sends a 400 response naming the offending field
func RespondValidationError(c *gin.Context, field, message string) {
	RespondWithAPIError(c, errors.ValidationError(field, message))
}

// RespondInternalError hides err behind a generic 500
func RespondInternalError(c *gin.Context, err error) {
	apiErr := errors.InternalError("Internal Server Error")
	if err != nil {
		apiErr = apiErr.WithDetails(err.Error())
	}
	RespondWithAPIError(c, apiErr)
}
