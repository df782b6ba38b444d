package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultBroadcastChannel = "storefront:cart:changed"
	defaultCloseTimeout     = 5 * time.Second
)

// cartChangeMessage is the wire form of a cart.ChangedEvent on the channel
type cartChangeMessage struct {
	EventID    string `json:"event_id"`
	SessionID  string `json:"session_id"`
	Reason     string `json:"reason"`
	ProductID  string `json:"product_id,omitempty"`
	ItemCount  int    `json:"item_count"`
	Origin     string `json:"origin"`
	OccurredAt int64  `json:"occurred_at"`
}

func messageFromEvent(e *cart.ChangedEvent, origin string) cartChangeMessage {
	return cartChangeMessage{
		EventID:    e.EventID().String(),
		SessionID:  e.SessionID(),
		Reason:     string(e.Reason),
		ProductID:  e.ProductID,
		ItemCount:  e.ItemCount,
		Origin:     origin,
		OccurredAt: e.OccurredAt().UnixNano(),
	}
}

func (m cartChangeMessage) toEvent() *cart.ChangedEvent {
	e := cart.NewChangedEvent(m.SessionID, cart.ChangeReason(m.Reason), m.ProductID, m.ItemCount)
	if id, err := uuid.Parse(m.EventID); err == nil {
		e.ID = id
	}
	if m.OccurredAt != 0 {
		e.Timestamp = time.Unix(0, m.OccurredAt)
	}
	e.Origin = m.Origin
	return e
}

// RedisCartBroadcaster relays cart change notifications between storefront
// processes over Redis Pub/Sub. Local changes are published to the channel;
// changes from other processes are re-published on the local bus.
type RedisCartBroadcaster struct {
	client     *redis.Client
	channel    string
	instanceID string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// RedisCartBroadcasterOption configures the broadcaster
type RedisCartBroadcasterOption func(*RedisCartBroadcaster)

// WithBroadcastChannel sets the Pub/Sub channel name
func WithBroadcastChannel(channel string) RedisCartBroadcasterOption {
	return func(b *RedisCartBroadcaster) {
		if channel != "" {
			b.channel = channel
		}
	}
}

// WithBroadcastLogger sets the logger
func WithBroadcastLogger(logger *zap.Logger) RedisCartBroadcasterOption {
	return func(b *RedisCartBroadcaster) {
		b.logger = logger
	}
}

// WithInstanceID overrides the generated process id
func WithInstanceID(id string) RedisCartBroadcasterOption {
	return func(b *RedisCartBroadcaster) {
		if id != "" {
			b.instanceID = id
		}
	}
}

// NewRedisCartBroadcasterWithClient creates a broadcaster on an existing client.
// The caller retains ownership of the client.
func NewRedisCartBroadcasterWithClient(client *redis.Client, opts ...RedisCartBroadcasterOption) *RedisCartBroadcaster {
	b := &RedisCartBroadcaster{
		client:     client,
		channel:    defaultBroadcastChannel,
		instanceID: uuid.NewString(),
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// InstanceID returns the id stamped on changes made by this process
func (b *RedisCartBroadcaster) InstanceID() string {
	return b.instanceID
}

// EventTypes implements shared.EventHandler
func (b *RedisCartBroadcaster) EventTypes() []string {
	return []string{cart.EventTypeCartChanged}
}

// Handle implements shared.EventHandler. It forwards changes made in this
// process to the channel and ignores changes that arrived from it.
func (b *RedisCartBroadcaster) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*cart.ChangedEvent)
	if !ok {
		return nil
	}
	if changed.Origin != "" && changed.Origin != b.instanceID {
		return nil
	}
	return b.Publish(ctx, changed)
}

// Publish sends a change to every subscribed process
func (b *RedisCartBroadcaster) Publish(ctx context.Context, event *cart.ChangedEvent) error {
	data, err := json.Marshal(messageFromEvent(event, b.instanceID))
	if err != nil {
		return fmt.Errorf("failed to marshal cart change: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish cart change",
			zap.String("channel", b.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish cart change: %w", err)
	}

	b.logger.Debug("Published cart change",
		zap.String("session_id", event.SessionID()),
		zap.String("reason", string(event.Reason)),
		zap.String("channel", b.channel))
	return nil
}

// Subscribe listens on the channel and re-publishes changes from other
// processes on publisher. It blocks until ctx is cancelled or Close is called.
func (b *RedisCartBroadcaster) Subscribe(ctx context.Context, publisher shared.EventPublisher) error {
	b.mu.Lock()
	if b.isRunning {
		b.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	b.isRunning = true
	subCtx, cancel := context.WithCancel(ctx)
	b.cancelFn = cancel
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.isRunning = false
		b.mu.Unlock()
		b.markDone()
	}()

	pubsub := b.client.Subscribe(subCtx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Info("Subscribed to cart change channel",
		zap.String("channel", b.channel),
		zap.String("instance_id", b.instanceID))

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			b.logger.Info("Cart change subscription stopped")
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warn("Cart change channel closed")
				return nil
			}
			b.relay(subCtx, publisher, msg.Payload)
		}
	}
}

func (b *RedisCartBroadcaster) relay(ctx context.Context, publisher shared.EventPublisher, payload string) {
	var m cartChangeMessage
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		b.logger.Error("Failed to unmarshal cart change",
			zap.String("payload", payload),
			zap.Error(err))
		return
	}
	if m.Origin == b.instanceID || m.SessionID == "" {
		return
	}

	if err := publisher.Publish(ctx, m.toEvent()); err != nil {
		b.logger.Error("Failed to relay cart change",
			zap.String("session_id", m.SessionID),
			zap.Error(err))
	}
}

func (b *RedisCartBroadcaster) markDone() {
	b.doneOnce.Do(func() {
		close(b.doneCh)
	})
}

// Close stops the subscription and waits for it to exit. The client stays
// open; it belongs to the caller.
func (b *RedisCartBroadcaster) Close() error {
	b.mu.Lock()
	cancelFn := b.cancelFn
	b.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-b.doneCh:
		case <-time.After(defaultCloseTimeout):
			b.logger.Warn("Timeout waiting for cart change subscription to stop")
		}
	}
	return nil
}

var _ shared.EventHandler = (*RedisCartBroadcaster)(nil)
