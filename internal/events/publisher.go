// Package events publishes brief lifecycle events to a Redis stream for the
// downstream content-generation pipeline.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

// asyncPublishTimeout bounds fire-and-forget publishes.
const asyncPublishTimeout = 5 * time.Second

// EventType identifies a brief lifecycle event.
type EventType string

// Published event types.
const (
	BriefValidated EventType = "brief.validated"
	BriefRejected  EventType = "brief.rejected"
	RunCompleted   EventType = "run.completed"
)

// BriefEvent is the payload written to the stream.
type BriefEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  EventType `json:"event_type"`
	BriefTitle string    `json:"brief_title,omitempty"`
	RunID      string    `json:"run_id,omitempty"`
	Warnings   int       `json:"warnings"`
	Errors     int       `json:"errors"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher publishes brief events to a Redis stream.
type Publisher struct {
	client *redis.Client
	stream string
	log    logger.Logger
}

// NewPublisher creates a new event publisher. Returns nil if client is nil,
// and a nil Publisher is a safe no-op.
func NewPublisher(client *redis.Client, stream string, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, stream: stream, log: log}
}

// Publish appends an event to the stream.
func (p *Publisher) Publish(ctx context.Context, event BriefEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"event": string(payload)},
	})
	if publishErr := result.Err(); publishErr != nil {
		p.log.Error("Failed to publish event",
			logger.String("event_type", string(event.EventType)),
			logger.Error(publishErr),
		)
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	p.log.Debug("Published brief event",
		logger.String("event_type", string(event.EventType)),
		logger.String("stream_id", result.Val()),
	)
	return nil
}

// PublishAsync publishes without blocking the caller; errors are logged.
func (p *Publisher) PublishAsync(event BriefEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.Error(err),
			)
		}
	}()
}
