package products

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

const warmTimeout = 30 * time.Second

// Warmer periodically refreshes the product cache on a cron schedule.
type Warmer struct {
	cache *CachedLister
	cron  *cron.Cron
	log   logger.Logger
}

// NewWarmer creates a warmer for cache with the given cron spec
// (e.g. "@every 5m").
func NewWarmer(cache *CachedLister, schedule string, log logger.Logger) (*Warmer, error) {
	w := &Warmer{
		cache: cache,
		cron:  cron.New(),
		log:   log,
	}

	if _, err := w.cron.AddFunc(schedule, w.warm); err != nil {
		return nil, fmt.Errorf("invalid warm schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start begins the warm schedule and performs one immediate warm.
func (w *Warmer) Start() {
	w.warm()
	w.cron.Start()
}

// Stop halts the schedule, waiting for an in-flight warm to finish.
func (w *Warmer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *Warmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	if err := w.cache.Warm(ctx); err != nil {
		w.log.Warn("Product cache warm failed", logger.Error(err))
		return
	}
	w.log.Debug("Product cache warmed")
}
