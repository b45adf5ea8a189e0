package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/strlens/analyzer/internal/middleware"
	"github.com/strlens/analyzer/internal/modules/health"
	"github.com/strlens/analyzer/internal/modules/record"
	"github.com/strlens/analyzer/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "string-analyzer",
		"version": "1.0.0",
		"message": "Analyze strings with POST /strings, query them with GET /strings",
	}
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, appInfo)
	})

	var (
		rdb         *redis.Client
		cache       *record.Cache
		redisPinger health.Pinger
	)
	if a.rc != nil {
		rdb = a.rc.Raw()
		cache = record.NewCache(a.rc, time.Duration(a.cfg.Cache.TTLSeconds)*time.Second, a.logger)
		redisPinger = a.rc
	}

	root := r.Group("")
	health.RegisterRoutes(root, a.repo, redisPinger, a.logger)

	api := r.Group("")
	api.Use(middleware.RateLimit(rdb, a.cfg.RateLimit.Max, time.Duration(a.cfg.RateLimit.WindowSeconds)*time.Second, a.logger))

	svc := record.NewService(a.repo, cache)
	record.NewHandler(svc, a.logger).RegisterRoutes(api)
}
