package auth

import (
	"context"
	"strings"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieName is the session cookie set on login and register
const CookieName = "token"

// TokenValidator is what the middleware needs from the auth service
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*models.User, error)
}

// RequireAuth accepts "Authorization: Bearer <jwt>" or the token cookie and
// stores the user under "user" and its id under "user_id".
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			util.RespondUnauthorized(c, "Login first")
			return
		}

		user, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Log.Debug("Rejected token", zap.Error(err), logger.WithIP(c.ClientIP()))
			util.RespondUnauthorized(c, "Login first")
			return
		}

		c.Set(util.UserKey, user)
		c.Set(util.UserIDKey, user.ID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		return ""
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}
