package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/strlens/analyzer/internal/config"
	"github.com/strlens/analyzer/internal/database"
	"github.com/strlens/analyzer/internal/middleware"
	"github.com/strlens/analyzer/internal/modules/record"
	pkgredis "github.com/strlens/analyzer/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	repo   record.Repository
	rc     *pkgredis.Client
	logger *zap.Logger
	// closers run in reverse order on Shutdown.
	closers []func(context.Context) error
}

// New initializes the application: config → store → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	a := &App{cfg: cfg, logger: logger}
	repo, err := a.openStore()
	if err != nil {
		a.Shutdown(context.Background())
		return nil, err
	}
	a.repo = repo

	if cfg.RedisEnabled() {
		rc, err := pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			a.Shutdown(context.Background())
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.rc = rc
		a.closers = append(a.closers, func(context.Context) error { return rc.Close() })
	} else {
		logger.Warn("redis disabled, record cache and rate limiting are off")
	}

	a.router = a.newRouter()
	a.registerRoutes()
	return a, nil
}

// NewWithRepository builds an App around an existing repository without
// connecting to any backing service.
func NewWithRepository(logger *zap.Logger, cfg *config.AppConfig, repo record.Repository) *App {
	a := &App{cfg: cfg, logger: logger, repo: repo}
	a.router = a.newRouter()
	a.registerRoutes()
	return a
}

func (a *App) openStore() (record.Repository, error) {
	switch a.cfg.Store.Driver {
	case config.DriverMongo:
		client, coll, err := database.ConnectMongo(context.Background(), a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)
		a.logger.Info("store ready", zap.String("driver", "mongo"), zap.String("collection", coll.Name()))
		return record.NewMongoRepository(coll), nil
	case config.DriverMemory:
		a.logger.Warn("using in-memory store, records are lost on restart")
		return record.NewMemoryRepository(), nil
	default:
		db, err := database.Connect(a.cfg, true)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		a.closers = append(a.closers, closeGorm(db))
		a.logger.Info("store ready", zap.String("driver", "mysql"))
		return record.NewGormRepository(db), nil
	}
}

func closeGorm(db *gorm.DB) func(context.Context) error {
	return func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}

func (a *App) newRouter() *gin.Engine {
	if a.cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(a.logger))

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(a.cfg.AllowedOrigins) > 0 && !a.cfg.IsDev() {
		patterns := a.cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))
	return router
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases store and cache connections.
func (a *App) Shutdown(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("shutdown: close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
