package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Pinger is anything whose connectivity can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes mounts GET /health. The store is required; a nil cache
// pinger means Redis is disabled. An unreachable cache degrades the status
// without failing the probe, since requests still succeed without it.
func RegisterRoutes(rg *gin.RouterGroup, store Pinger, cache Pinger, logger *zap.Logger) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		status := "ok"
		code := http.StatusOK

		storeOK := true
		if err := store.Ping(ctx); err != nil {
			logger.Warn("health: store ping failed", zap.Error(err))
			storeOK = false
			status = "down"
			code = http.StatusServiceUnavailable
		}

		var redisState interface{} = "disabled"
		if cache != nil {
			redisOK := cache.Ping(ctx) == nil
			redisState = redisOK
			if !redisOK && storeOK {
				status = "degraded"
			}
		}

		c.JSON(code, gin.H{
			"status": status,
			"store":  storeOK,
			"redis":  redisState,
		})
	})
}
