package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

// Event is one run update pushed to SSE subscribers.
// Wire format: event: <Type>\ndata: <JSON payload>\n\n
type Event struct {
	Type  string `json:"type"`
	RunID string `json:"run_id"`
	Data  any    `json:"data"`
}

// Event types emitted by the tracker stream.
const (
	EventTypeRunUpdated = "run:updated"
	EventTypeRunDone    = "run:done"
	EventTypeRunFailed  = "run:failed"
)

// BrokerConfig configures the stream broker.
type BrokerConfig struct {
	EventBufferSize  int
	ClientBufferSize int
	MaxClients       int
}

// Broker fans run events out to SSE subscribers.
type Broker struct {
	log logger.Logger
	cfg BrokerConfig

	mu      sync.RWMutex
	clients map[string]*streamClient

	publish chan Event
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type streamClient struct {
	id     string
	runID  string // empty subscribes to all runs
	events chan Event

	closed  atomic.Bool
	closeMu sync.Mutex
}

func (c *streamClient) close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed.Load() {
		return
	}
	c.closed.Store(true)
	close(c.events)
}

// send attempts a non-blocking delivery. Returns false if the client buffer
// is full. The check-and-send runs under closeMu so a concurrent close can
// never race the channel send.
func (c *streamClient) send(event Event) bool {
	if c.runID != "" && c.runID != event.RunID {
		return true
	}

	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed.Load() {
		return true
	}
	select {
	case c.events <- event:
		return true
	default:
		return false
	}
}

// NewBroker creates a stream broker.
func NewBroker(cfg BrokerConfig, log logger.Logger) *Broker {
	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = 100
	}
	if cfg.ClientBufferSize <= 0 {
		cfg.ClientBufferSize = 10
	}
	return &Broker{
		log:     log,
		cfg:     cfg,
		clients: make(map[string]*streamClient),
		publish: make(chan Event, cfg.EventBufferSize),
	}
}

// Start begins distributing events. Non-blocking.
func (b *Broker) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.wg.Add(1)
	go b.broadcastLoop()
}

// Stop shuts the broker down and disconnects all clients.
func (b *Broker) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
}

// Publish queues an event for distribution. Returns an error when the
// publish buffer is full rather than blocking the caller.
func (b *Broker) Publish(event Event) error {
	select {
	case b.publish <- event:
		return nil
	default:
		return fmt.Errorf("publish buffer full (dropped event: %s)", event.Type)
	}
}

// Subscribe registers a client for events. An empty runID receives events
// for every run. The returned cleanup must be called on disconnect.
func (b *Broker) Subscribe(runID string) (<-chan Event, func()) {
	b.mu.Lock()
	if b.cfg.MaxClients > 0 && len(b.clients) >= b.cfg.MaxClients {
		b.mu.Unlock()
		b.log.Warn("Max SSE clients reached, rejecting new connection",
			logger.Int("max_clients", b.cfg.MaxClients),
		)
		closed := make(chan Event)
		close(closed)
		return closed, func() {}
	}

	c := &streamClient{
		id:     uuid.New().String(),
		runID:  runID,
		events: make(chan Event, b.cfg.ClientBufferSize),
	}
	b.clients[c.id] = c
	b.mu.Unlock()

	b.log.Debug("Pipeline stream client subscribed",
		logger.String("client_id", c.id),
		logger.String("run_id", runID),
	)

	return c.events, func() { b.removeClient(c.id) }
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broker) broadcastLoop() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.publish:
			b.broadcast(event)
		case <-b.ctx.Done():
			b.disconnectAll()
			return
		}
	}
}

func (b *Broker) broadcast(event Event) {
	b.mu.RLock()
	clients := make([]*streamClient, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		if !c.send(event) {
			b.log.Warn("Client buffer full, closing slow connection",
				logger.String("client_id", c.id),
				logger.String("event_type", event.Type),
			)
			b.removeClient(c.id)
		}
	}
}

func (b *Broker) removeClient(id string) {
	b.mu.Lock()
	c, ok := b.clients[id]
	if ok {
		delete(b.clients, id)
	}
	b.mu.Unlock()

	if ok {
		c.close()
	}
}

func (b *Broker) disconnectAll() {
	b.mu.Lock()
	clients := b.clients
	b.clients = make(map[string]*streamClient)
	b.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// EventFor builds the stream event for a run snapshot.
func EventFor(run *Run) Event {
	eventType := EventTypeRunUpdated
	switch run.Status {
	case StatusDone:
		eventType = EventTypeRunDone
	case StatusFailed:
		eventType = EventTypeRunFailed
	}
	return Event{Type: eventType, RunID: run.ID, Data: run}
}
