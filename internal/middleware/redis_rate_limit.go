package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/devfinds/devfinds/internal/cache"
	"github.com/devfinds/devfinds/internal/errors"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit returns a fixed-window limiter shared through Redis when a client
// is given, and the in-memory token bucket limiter otherwise.
func RateLimit(redisClient *cache.RedisClient, name string, config RateLimitConfig) gin.HandlerFunc {
	if redisClient == nil {
		return NewRateLimiter(config)
	}
	if config.KeyFunc == nil {
		config.KeyFunc = clientKey
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", name, config.KeyFunc(c))
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := redisClient.IncrWindow(ctx, key, config.Window)
		if err != nil {
			// fail closed: a broken limiter must not open the endpoint
			logger.Log.Error("Rate limit check failed",
				logger.WithIP(c.ClientIP()),
				zap.Error(err),
			)
			util.RespondWithAPIError(c, errors.ServiceUnavailable("Rate limiter"))
			return
		}

		if count > int64(config.Limit) {
			logger.Log.Warn("Rate limit exceeded",
				logger.WithIP(c.ClientIP()),
				zap.String("limiter", name),
				zap.Int64("count", count),
			)
			rejectRateLimited(c, config.Limit, int(config.Window.Seconds()))
			return
		}

		c.Next()
	}
}
