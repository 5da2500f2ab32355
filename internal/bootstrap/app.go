// Package bootstrap handles application initialization and lifecycle
// management for the studio-api service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/creator-studio/internal/config"
	"github.com/jonesrussell/creator-studio/internal/database"
	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/pipeline"
)

// Start initializes and runs the studio-api application. It blocks until
// shutdown.
func Start(ctx context.Context) error {
	// Phase 1: config and logger
	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting studio-api",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	// Phase 2: database
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	if migrateErr := database.RunMigrations(cfg, log); migrateErr != nil {
		return fmt.Errorf("run migrations: %w", migrateErr)
	}

	// Phase 3: Redis-backed concerns (optional)
	redisClient := SetupRedis(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	publisher := SetupEventPublisher(cfg, redisClient, log)

	// Phase 4: pipeline run tracking and streaming
	tracker := pipeline.NewTracker()
	broker := pipeline.NewBroker(pipeline.BrokerConfig{
		EventBufferSize:  cfg.Pipeline.EventBufferSize,
		ClientBufferSize: cfg.Pipeline.ClientBufferSize,
		MaxClients:       cfg.Pipeline.MaxClients,
	}, log)
	broker.Start(ctx)
	defer broker.Stop()

	// Phase 5: product cache warmer
	lister, warmer, err := SetupProducts(cfg, db, redisClient, log)
	if err != nil {
		return fmt.Errorf("setup products: %w", err)
	}
	if warmer != nil {
		warmer.Start()
		defer warmer.Stop()
	}

	// Phase 6: HTTP server
	srv := SetupHTTPServer(cfg, db, redisClient, ServerDeps{
		Lister:    lister,
		Tracker:   tracker,
		Broker:    broker,
		Publisher: publisher,
	}, log)

	if runErr := srv.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
