package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/creator-studio/internal/config"
	"github.com/jonesrussell/creator-studio/internal/database"
	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/products"
)

// SetupProducts wires the surfaced-products repository behind its Redis
// cache and schedules cache warming. The warmer is nil when caching is
// disabled.
func SetupProducts(
	cfg *config.Config,
	db *database.DB,
	redisClient *redis.Client,
	log logger.Logger,
) (products.Lister, *products.Warmer, error) {
	repo := products.NewRepository(db.DB(), log)
	if redisClient == nil {
		return repo, nil, nil
	}

	cache := products.NewCachedLister(repo, redisClient, cfg.Redis.ProductsTTL, log)
	warmer, err := products.NewWarmer(cache, cfg.Products.WarmSchedule, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create cache warmer: %w", err)
	}
	return cache, warmer, nil
}
