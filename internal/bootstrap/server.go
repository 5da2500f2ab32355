package bootstrap

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/creator-studio/internal/api"
	"github.com/jonesrussell/creator-studio/internal/auth"
	"github.com/jonesrussell/creator-studio/internal/config"
	"github.com/jonesrussell/creator-studio/internal/database"
	"github.com/jonesrussell/creator-studio/internal/events"
	"github.com/jonesrussell/creator-studio/internal/knowledge"
	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/metrics"
	"github.com/jonesrussell/creator-studio/internal/pipeline"
	"github.com/jonesrussell/creator-studio/internal/products"
	"github.com/jonesrussell/creator-studio/internal/server"
	"github.com/jonesrussell/creator-studio/internal/share"
)

const healthCheckTimeout = 2 * time.Second

// ServerDeps carries the long-lived collaborators into the HTTP server.
type ServerDeps struct {
	Lister    products.Lister
	Tracker   *pipeline.Tracker
	Broker    *pipeline.Broker
	Publisher *events.Publisher
}

// SetupHTTPServer builds the HTTP server with all routes registered.
func SetupHTTPServer(
	cfg *config.Config,
	db *database.DB,
	redisClient *redis.Client,
	deps ServerDeps,
	log logger.Logger,
) *server.Server {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	knowledgeSvc := knowledge.NewService(knowledge.NewRepository(db.DB(), log), log)
	shareSvc := share.NewService(share.Config{
		BaseURL:    cfg.Share.BaseURL,
		Size:       cfg.Share.QRSize,
		Foreground: cfg.Share.Foreground,
		Background: cfg.Share.Background,
	}, log)

	handler := api.NewHandler(api.Deps{
		Config:    cfg,
		Log:       log,
		JWT:       jwtManager,
		Knowledge: knowledgeSvc,
		Products:  deps.Lister,
		Tracker:   deps.Tracker,
		Broker:    deps.Broker,
		Share:     shareSvc,
		Events:    deps.Publisher,
	})

	serviceMetrics := metrics.New(cfg.Service.Name)

	return server.New(cfg, log, func(router *gin.Engine) {
		router.Use(serviceMetrics.Middleware())
		router.GET("/metrics", serviceMetrics.Handler())

		server.RegisterHealthRoutes(router, server.HealthOptions{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			Checks:         healthChecks(db, redisClient),
		})

		api.SetupRoutes(router, handler)
	})
}

func healthChecks(db *database.DB, redisClient *redis.Client) map[string]server.HealthChecker {
	checks := map[string]server.HealthChecker{
		"database": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()
			return db.Ping(ctx)
		},
	}
	if redisClient != nil {
		checks["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}
