// Package cart implements the session cart store: persisted entries,
// mutations that notify subscribers, and the priced cart view.
package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductLookup resolves product ids for the cart view
type ProductLookup interface {
	LookupAll(ctx context.Context, ids []string) (catalog.Lookups, error)
}

// Badge is the navigation badge state
type Badge struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// Store is the cart of one session. Every write goes through mutate, which
// persists the new entries and then publishes a cart.changed event.
type Store struct {
	sessionID string
	slots     shared.SlotStore
	publisher shared.EventPublisher
	lookup    ProductLookup
	metrics   *telemetry.StorefrontMetrics

	// serializes read-modify-write within this process
	mu sync.Mutex
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithProductLookup enables View
func WithProductLookup(lookup ProductLookup) StoreOption {
	return func(s *Store) {
		s.lookup = lookup
	}
}

// WithMetrics records cart mutations
func WithMetrics(m *telemetry.StorefrontMetrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates the cart store of sessionID
func NewStore(sessionID string, slots shared.SlotStore, publisher shared.EventPublisher, opts ...StoreOption) *Store {
	s := &Store{
		sessionID: sessionID,
		slots:     slots,
		publisher: publisher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionID returns the session the store belongs to
func (s *Store) SessionID() string {
	return s.sessionID
}

// Read returns the entries in insertion order. A missing or unparsable
// stored value reads as an empty cart.
func (s *Store) Read(ctx context.Context) ([]cart.Entry, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Entries(), nil
}

// Badge returns the item count and its badge label
func (s *Store) Badge(ctx context.Context) (Badge, error) {
	c, err := s.load(ctx)
	if err != nil {
		return Badge{}, err
	}
	return Badge{Count: c.ItemCount(), Label: c.BadgeLabel()}, nil
}

// AddOrIncrement adds delta to the product's quantity, appending a new entry
// when the product is not in the cart yet.
func (s *Store) AddOrIncrement(ctx context.Context, productID string, delta int) error {
	productID = strings.TrimSpace(productID)
	_, err := s.mutate(ctx, cart.ReasonAdded, productID, func(c *cart.Cart) (bool, error) {
		if err := c.AddOrIncrement(productID, delta); err != nil {
			return false, err
		}
		return true, nil
	})
	return err
}

// SetQuantity overwrites the quantity of an entry already in the cart.
// Quantities below 1 and unknown products are ignored without a write.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	productID = strings.TrimSpace(productID)
	return s.mutate(ctx, cart.ReasonUpdated, productID, func(c *cart.Cart) (bool, error) {
		return c.SetQuantity(productID, quantity), nil
	})
}

// Remove deletes the product's entry. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	return s.mutate(ctx, cart.ReasonRemoved, productID, func(c *cart.Cart) (bool, error) {
		return c.Remove(productID), nil
	})
}

// Clear empties the cart. It always persists and notifies.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, cart.ReasonCleared, "", func(c *cart.Cart) (bool, error) {
		c.Clear()
		return true, nil
	})
	return err
}

// View joins the entries with product lookups and prices the cart
func (s *Store) View(ctx context.Context) (View, error) {
	if s.lookup == nil {
		return View{}, fmt.Errorf("cart: no product lookup configured")
	}
	entries, err := s.Read(ctx)
	if err != nil {
		return View{}, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	lookups, err := s.lookup.LookupAll(ctx, ids)
	if err != nil {
		return View{}, err
	}
	return BuildView(entries, lookups), nil
}

func (s *Store) load(ctx context.Context) (*cart.Cart, error) {
	raw, found, err := s.slots.Get(ctx, shared.SlotCart)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if !found {
		return cart.New(nil), nil
	}
	return cart.Decode(raw), nil
}

// mutate is the single write path. fn reports whether it changed the cart;
// an unchanged cart is neither written nor announced.
func (s *Store) mutate(ctx context.Context, reason cart.ChangeReason, productID string, fn func(*cart.Cart) (bool, error)) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "cart", string(reason),
		telemetry.SpanAttrSessionID, s.sessionID,
		telemetry.SpanAttrProductID, productID,
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return false, err
	}
	changed, err := fn(c)
	if err != nil || !changed {
		return false, err
	}

	if err := s.persist(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return false, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrItemCount, c.ItemCount())
	s.metrics.RecordCartMutation(ctx, string(reason))

	event := cart.NewChangedEvent(s.sessionID, reason, productID, c.ItemCount())
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.L(ctx).Warn("failed to publish cart change",
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
	}
	return true, nil
}

func (s *Store) persist(ctx context.Context, c *cart.Cart) error {
	if c.IsEmpty() {
		if err := s.slots.Delete(ctx, shared.SlotCart); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	}
	raw, err := cart.Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.slots.Set(ctx, shared.SlotCart, raw); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
