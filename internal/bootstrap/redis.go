package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/creator-studio/internal/config"
	"github.com/jonesrussell/creator-studio/internal/events"
	"github.com/jonesrussell/creator-studio/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// SetupRedis creates a Redis client if Redis is enabled and reachable.
// Returns nil otherwise; callers treat a nil client as "caching disabled".
func SetupRedis(cfg *config.Config, log logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, caching and events disabled",
			logger.String("addr", cfg.Redis.Addr),
			logger.Error(err),
		)
		_ = client.Close()
		return nil
	}

	log.Info("Redis connection established", logger.String("addr", cfg.Redis.Addr))
	return client
}

// SetupEventPublisher creates the brief event publisher. Returns nil when
// Redis is unavailable; a nil publisher is a safe no-op.
func SetupEventPublisher(cfg *config.Config, client *redis.Client, log logger.Logger) *events.Publisher {
	if client == nil {
		return nil
	}

	log.Info("Event publisher initialized",
		logger.String("stream", cfg.Redis.EventStream),
	)
	return events.NewPublisher(client, cfg.Redis.EventStream, log)
}
