package events_test

import (
	"context"
	"testing"

	"github.com/jonesrussell/creator-studio/internal/events"
	"github.com/jonesrussell/creator-studio/internal/logger"
)

func TestNewPublisher_RequiresClient(t *testing.T) {
	pub := events.NewPublisher(nil, "studio:brief-events", logger.Nop())
	if pub != nil {
		t.Error("expected nil publisher when client is nil")
	}
}

func TestPublish_NilReceiverIsNoOp(t *testing.T) {
	var pub *events.Publisher

	err := pub.Publish(context.Background(), events.BriefEvent{
		EventType:  events.BriefValidated,
		BriefTitle: "Launch teaser",
	})
	if err != nil {
		t.Errorf("expected nil error for nil receiver, got: %v", err)
	}
}

func TestPublishAsync_NilReceiverIsNoOp(t *testing.T) {
	var pub *events.Publisher

	// Should not panic.
	pub.PublishAsync(events.BriefEvent{EventType: events.RunCompleted, RunID: "run-1"})
}
