package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is a domain notification carried over the in-process bus.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
}

type Handler func(ctx context.Context, event Event) error

// EventBus fans entry lifecycle events out to their subscribers.
// Publish is asynchronous so audit writes never block the request path.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	logger      *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string][]Handler),
		logger:      logger,
	}
}

func (b *EventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
	b.logger.Debug("event subscriber registered",
		"event_type", eventType,
		"subscribers", len(b.subscribers[eventType]))
}

func (b *EventBus) Publish(ctx context.Context, event Event) error {
	for _, handler := range b.subscribersFor(event.EventType()) {
		go func(h Handler) {
			if err := h(ctx, event); err != nil {
				b.logger.Error("event subscriber failed",
					"event_type", event.EventType(),
					"event_id", event.EventID(),
					"error", err)
			}
		}(handler)
	}
	return nil
}

// PublishSync runs subscribers inline and stops at the first failure.
// The CLI event command uses it to surface subscriber errors directly.
func (b *EventBus) PublishSync(ctx context.Context, event Event) error {
	for _, handler := range b.subscribersFor(event.EventType()) {
		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("subscriber failed for %s: %w", event.EventType(), err)
		}
	}
	return nil
}

func (b *EventBus) subscribersFor(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.subscribers[eventType]
}
