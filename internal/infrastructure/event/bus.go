package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"go.uber.org/zap"
)

// Hub is the in-process change notification bus. Publish delivers
// synchronously to every matching subscriber before returning, so a surface
// that re-reads storage after a notification sees the published change.
type Hub struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
}

// NewHub creates a new in-memory notification hub
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
	h.running.Store(true)
	return h
}

// Publish publishes events to all registered handlers synchronously.
// Handler errors and panics are logged and do not stop delivery.
func (h *Hub) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !h.running.Load() {
		return nil
	}
	for _, event := range events {
		for _, handler := range h.registry.GetHandlers(event.EventType()) {
			if err := h.dispatchToHandler(ctx, handler, event); err != nil {
				h.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("session_id", event.SessionID()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler and returns its Subscription
func (h *Hub) Subscribe(handler shared.EventHandler, eventTypes ...string) shared.Subscription {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	h.registry.Register(handler, eventTypes...)
	h.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
	return &subscription{hub: h, handler: handler}
}

// Unsubscribe removes a handler
func (h *Hub) Unsubscribe(handler shared.EventHandler) {
	h.registry.Unregister(handler)
	h.logger.Debug("handler unsubscribed")
}

// SubscriberCount returns the number of registered handlers
func (h *Hub) SubscriberCount() int {
	return h.registry.Count()
}

// Start resumes delivery after Stop
func (h *Hub) Start(ctx context.Context) error {
	h.running.Store(true)
	h.logger.Info("notification hub started")
	return nil
}

// Stop stops delivering events. Publishing to a stopped hub is a no-op.
func (h *Hub) Stop(ctx context.Context) error {
	h.running.Store(false)
	h.logger.Info("notification hub stopped")
	return nil
}

// dispatchToHandler safely dispatches an event to a handler
func (h *Hub) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return handler.Handle(ctx, event)
}

type subscription struct {
	hub     *Hub
	handler shared.EventHandler
	once    sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.Unsubscribe(s.handler)
	})
}

var _ shared.EventBus = (*Hub)(nil)
