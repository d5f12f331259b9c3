package middleware

import (
	"time"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GinLoggerMiddleware writes one structured line per request. Requests to
// quietPaths (probes, scrapes) are only logged when they fail.
func GinLoggerMiddleware(quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := requestLogLevel(status)
		if _, ok := quiet[c.Request.URL.Path]; ok && level == zapcore.InfoLevel {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			logger.WithStatus(status),
			logger.WithIP(c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", c.Writer.Size()),
		}
		if id := c.GetString(util.RequestIDKey); id != "" {
			fields = append(fields, logger.WithRequestID(id))
		}
		if id := c.GetString(util.UserIDKey); id != "" {
			fields = append(fields, logger.WithUserID(id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if ce := logger.Log.Check(level, "HTTP request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func requestLogLevel(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
