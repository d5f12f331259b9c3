package handlers

import (
	"github.com/devfinds/devfinds/internal/errors"
	"github.com/devfinds/devfinds/internal/relationship"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
)

// relationshipError maps a relationship failure onto the API error envelope.
// Internal details are logged but never reach the client.
func relationshipError(c *gin.Context, err error) {
	msg := relationship.MessageOf(err)

	var apiErr *errors.APIError
	switch relationship.KindOf(err) {
	case relationship.KindNotFound:
		apiErr = errors.NotFound(msg)
	case relationship.KindInvalidOperation:
		apiErr = errors.InvalidOperation(msg)
	case relationship.KindInvalidArgument:
		apiErr = errors.ValidationError("status", msg)
	case relationship.KindConflict:
		apiErr = errors.Conflict(msg)
	default:
		apiErr = errors.InternalError(msg).WithDetails(err.Error())
	}
	util.RespondWithAPIError(c, apiErr)
}
