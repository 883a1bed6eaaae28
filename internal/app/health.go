package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the database backing the service is reachable
type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{
		infra: infra,
	}
}

func (h *HealthChecker) Handler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.infra.Postgres().Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		h.infra.Logger().Warn("Health check failed", zap.Error(err), zap.Duration("latency", latency))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "fail",
			"postgres": "fail",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "pass",
		"postgres":   "pass",
		"latency_ms": latency.Milliseconds(),
	})
}
