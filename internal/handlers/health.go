package handlers

import (
	"net/http"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health reports liveness and database reachability
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	state, dbStatus := "ok", "ok"
	status := http.StatusOK
	if h.health != nil {
		if err := h.health(); err != nil {
			logger.Log.Error("Health check failed", zap.Error(err))
			state, dbStatus = "degraded", "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status":   state,
		"database": dbStatus,
	})
}
