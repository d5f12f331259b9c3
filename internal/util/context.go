package util

import (
	"github.com/devfinds/devfinds/internal/models"
	"github.com/gin-gonic/gin"
)

// Keys the auth and request-id middleware store on the gin context
const (
	UserKey      = "user"
	UserIDKey    = "user_id"
	RequestIDKey = "request_id"
)

// GetUserFromContext returns the authenticated user. When there is none it has
// already answered 401 and the handler should just return.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	user, ok := mustGet[*models.User](c, UserKey)
	if ok && user == nil {
		RespondUnauthorized(c)
		return nil, false
	}
	return user, ok
}

// GetUserIDFromContext is GetUserFromContext for handlers that only need the id
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	id, ok := mustGet[string](c, UserIDKey)
	if ok && id == "" {
		RespondUnauthorized(c)
		return "", false
	}
	return id, ok
}

func mustGet[T any](c *gin.Context, key string) (T, bool) {
	v, ok := c.Get(key)
	typed, isT := v.(T)
	if !ok || !isT {
		RespondUnauthorized(c)
		var zero T
		return zero, false
	}
	return typed, true
}
