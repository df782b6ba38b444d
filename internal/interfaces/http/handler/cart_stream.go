package handler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nounthanith/localbrand-frontend/internal/application/storefront"
	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Stream event names
const (
	StreamEventConnected = "connected"
	StreamEventCart      = "cart"
	StreamEventHeartbeat = "heartbeat"
)

// streamBufferSize is how many events may queue for a slow client before
// further events are dropped.
const streamBufferSize = 16

// CartSubscriber gives access to a session cart and its change stream
type CartSubscriber interface {
	CartProvider
	Subscribe(sessionID string, fn storefront.ChangeListener) shared.Subscription
}

type streamMessage struct {
	Event string
	Data  any
}

type streamClient struct {
	ID        string
	SessionID string
	Chan      chan streamMessage
}

// CartStreamHandler pushes cart changes of the caller's session over
// Server-Sent Events.
type CartStreamHandler struct {
	BaseHandler
	carts      CartSubscriber
	logger     *zap.Logger
	metrics    *telemetry.StorefrontMetrics
	clients    sync.Map // map[string]*streamClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	maxClients int
	started    bool
	startMu    sync.Mutex
}

// CartStreamOption is a functional option for configuring the handler
type CartStreamOption func(*CartStreamHandler)

// WithSSELogger sets the logger for the handler
func WithSSELogger(logger *zap.Logger) CartStreamOption {
	return func(h *CartStreamHandler) {
		h.logger = logger
	}
}

// WithSSEHeartbeat sets the heartbeat interval
func WithSSEHeartbeat(interval time.Duration) CartStreamOption {
	return func(h *CartStreamHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// WithSSEMaxClients sets the maximum number of concurrent stream clients.
// Zero means unlimited.
func WithSSEMaxClients(max int) CartStreamOption {
	return func(h *CartStreamHandler) {
		h.maxClients = max
	}
}

// WithSSEMetrics records connected stream clients
func WithSSEMetrics(m *telemetry.StorefrontMetrics) CartStreamOption {
	return func(h *CartStreamHandler) {
		h.metrics = m
	}
}

// NewCartStreamHandler creates a new CartStreamHandler
func NewCartStreamHandler(carts CartSubscriber, opts ...CartStreamOption) *CartStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &CartStreamHandler{
		carts:      carts,
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		maxClients: 10000,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start begins sending heartbeats to connected clients
func (h *CartStreamHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("cart stream handler already started")
	}
	go h.sendHeartbeats()

	h.started = true
	h.logger.Info("Cart stream handler started", zap.Duration("heartbeat", h.heartbeat))
	return nil
}

// Stop disconnects every client and stops the heartbeat
func (h *CartStreamHandler) Stop() {
	h.cancel()
	h.logger.Info("Cart stream handler stopped")
}

// Stream godoc
//
//	@Summary		Subscribe to cart changes via SSE
//	@Description	Sends a "connected" event with the badge, then a "cart" event for every change of the session cart
//	@Tags			cart
//	@Produce		text/event-stream
//	@Success		200	{string}	string	"SSE stream"
//	@Failure		503	{object}	dto.Response{error=dto.ErrorInfo}
//	@Router			/cart/stream [get]
func (h *CartStreamHandler) Stream(c *gin.Context) {
	if h.maxClients > 0 && h.ClientCount() >= h.maxClients {
		h.ErrorWithCode(c, dto.ErrCodeTooManyConnections, "Maximum number of stream connections reached")
		return
	}

	reqCtx := c.Request.Context()
	sessionID := getSessionID(c)

	badge, err := h.carts.Cart(sessionID).Badge(reqCtx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	client := &streamClient{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Chan:      make(chan streamMessage, streamBufferSize),
	}

	// Subscribed before "connected" is written; no change may fall in between.
	sub := h.carts.Subscribe(sessionID, func(_ context.Context, e *cart.ChangedEvent) {
		h.send(client, streamMessage{Event: StreamEventCart, Data: changeToEvent(e)})
	})
	h.clients.Store(client.ID, client)
	h.metrics.StreamConnected(reqCtx)

	// Chan stays open; a publisher may hold the listener until Unsubscribe returns.
	defer func() {
		sub.Unsubscribe()
		h.clients.Delete(client.ID)
		h.metrics.StreamDisconnected(context.WithoutCancel(reqCtx))
		h.logger.Debug("Cart stream client disconnected",
			zap.String("client_id", client.ID),
			zap.String("session_id", sessionID))
	}()

	h.logger.Debug("Cart stream client connected",
		zap.String("client_id", client.ID),
		zap.String("session_id", sessionID))

	c.SSEvent(StreamEventConnected, gin.H{
		"clientId": client.ID,
		"count":    badge.Count,
		"label":    badge.Label,
	})
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case <-reqCtx.Done():
			return false
		case <-h.ctx.Done():
			return false
		case msg := <-client.Chan:
			c.SSEvent(msg.Event, msg.Data)
			return true
		}
	})
}

// ClientCount returns the number of connected stream clients
func (h *CartStreamHandler) ClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func (h *CartStreamHandler) send(client *streamClient, msg streamMessage) {
	select {
	case client.Chan <- msg:
	default:
		h.logger.Warn("Cart stream client too slow, dropping event",
			zap.String("client_id", client.ID),
			zap.String("event", msg.Event))
	}
}

func (h *CartStreamHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			msg := streamMessage{
				Event: StreamEventHeartbeat,
				Data:  gin.H{"timestamp": time.Now().Unix()},
			}
			h.clients.Range(func(_, value any) bool {
				if client, ok := value.(*streamClient); ok {
					h.send(client, msg)
				}
				return true
			})
		}
	}
}

func changeToEvent(e *cart.ChangedEvent) dto.CartChangeEvent {
	return dto.CartChangeEvent{
		Reason:    string(e.Reason),
		ProductID: e.ProductID,
		Count:     e.ItemCount,
		Label:     cart.BadgeLabel(e.ItemCount),
	}
}

var _ CartSubscriber = (*storefront.Service)(nil)
