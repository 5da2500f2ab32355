package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

const cacheKey = "studio:surfaced-products"

// Lister loads surfaced products from a backing store.
type Lister interface {
	ListSurfaced(ctx context.Context) ([]SurfacedProduct, error)
}

// CachedLister fronts a Lister with a Redis cache. Cache failures are
// non-fatal: the backing store always serves as fallback.
type CachedLister struct {
	next   Lister
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewCachedLister wraps next with a Redis cache. A nil client disables
// caching entirely.
func NewCachedLister(next Lister, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedLister {
	return &CachedLister{next: next, client: client, ttl: ttl, log: log}
}

// ListSurfaced returns products from cache when fresh, falling through to
// the backing store and repopulating on miss.
func (c *CachedLister) ListSurfaced(ctx context.Context) ([]SurfacedProduct, error) {
	if c.client != nil {
		cached, err := c.client.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var products []SurfacedProduct
			if unmarshalErr := json.Unmarshal(cached, &products); unmarshalErr == nil {
				return products, nil
			}
			// Corrupt cache entry: fall through and rewrite it.
			c.log.Warn("Corrupt product cache entry, refreshing", logger.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			c.log.Warn("Product cache read failed", logger.Error(err))
		}
	}

	products, err := c.next.ListSurfaced(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, products)
	return products, nil
}

// Warm refreshes the cache from the backing store.
func (c *CachedLister) Warm(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	products, err := c.next.ListSurfaced(ctx)
	if err != nil {
		return fmt.Errorf("warm product cache: %w", err)
	}
	c.store(ctx, products)
	return nil
}

func (c *CachedLister) store(ctx context.Context, products []SurfacedProduct) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(products)
	if err != nil {
		c.log.Error("Marshal products for cache", logger.Error(err))
		return
	}
	if setErr := c.client.Set(ctx, cacheKey, payload, c.ttl).Err(); setErr != nil {
		c.log.Warn("Product cache write failed", logger.Error(setErr))
	}
}
