// Package storefront wires the per-session cart, checkout and order history
// services over shared storage, the change hub and the shop API.
package storefront

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	appcart "github.com/nounthanith/localbrand-frontend/internal/application/cart"
	appcatalog "github.com/nounthanith/localbrand-frontend/internal/application/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/application/checkout"
	"github.com/nounthanith/localbrand-frontend/internal/application/orders"
	"github.com/nounthanith/localbrand-frontend/internal/application/session"
	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ChangeListener receives cart changes of one session
type ChangeListener func(ctx context.Context, event *cart.ChangedEvent)

// Config holds the collaborators of a Service
type Config struct {
	Slots    shared.SessionSlots
	Events   shared.EventBus
	Catalog  *appcatalog.LookupService
	Gateway  order.Gateway
	Validate *validator.Validate
	Metrics  *telemetry.StorefrontMetrics
	Logger   *zap.Logger
	// IdleTTL drops in-memory checkout and history state of idle sessions
	IdleTTL time.Duration
}

// Service hands out the services of each visitor session
type Service struct {
	cfg       Config
	carts     *session.Registry[*appcart.Store]
	checkouts *checkout.Registry
	histories *orders.Registry
}

// NewService creates a new storefront service
func NewService(cfg Config) *Service {
	if cfg.Validate == nil {
		cfg.Validate = checkout.NewFormValidator()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Service{cfg: cfg}
	ttl := session.WithIdleTTL(cfg.IdleTTL)

	s.carts = session.NewRegistry(func(sessionID string) *appcart.Store {
		return appcart.NewStore(sessionID, cfg.Slots.ForSession(sessionID), cfg.Events,
			appcart.WithProductLookup(cfg.Catalog),
			appcart.WithMetrics(cfg.Metrics),
		)
	}, ttl)

	s.checkouts = checkout.NewRegistry(func(sessionID string) *checkout.Session {
		return checkout.NewSession(sessionID, checkout.Deps{
			Cart:     s.Cart(sessionID),
			Slots:    cfg.Slots.ForSession(sessionID),
			Gateway:  cfg.Gateway,
			Resolver: appcatalog.NewResolver(cfg.Catalog),
			Validate: cfg.Validate,
			Metrics:  cfg.Metrics,
		})
	}, ttl)

	s.histories = orders.NewRegistry(func(sessionID string) *orders.History {
		return orders.NewHistory(cfg.Slots.ForSession(sessionID), cfg.Gateway)
	}, ttl)

	return s
}

// Catalog returns the product lookup service
func (s *Service) Catalog() *appcatalog.LookupService {
	return s.cfg.Catalog
}

// Cart returns the cart store of sessionID
func (s *Service) Cart(sessionID string) *appcart.Store {
	return s.carts.Get(sessionID)
}

// Checkout returns the checkout session of sessionID
func (s *Service) Checkout(sessionID string) *checkout.Session {
	return s.checkouts.Get(sessionID)
}

// Orders returns the order history of sessionID
func (s *Service) Orders(sessionID string) *orders.History {
	return s.histories.Get(sessionID)
}

// Subscribe calls fn for every cart change of sessionID until the returned
// subscription is cancelled.
func (s *Service) Subscribe(sessionID string, fn ChangeListener) shared.Subscription {
	handler := &shared.EventHandlerFunc{
		Types: []string{cart.EventTypeCartChanged},
		Fn: func(ctx context.Context, event shared.DomainEvent) error {
			changed, ok := event.(*cart.ChangedEvent)
			if !ok || changed.SessionID() != sessionID {
				return nil
			}
			fn(ctx, changed)
			return nil
		},
	}
	return s.cfg.Events.Subscribe(handler)
}

// Prune drops idle session state and returns how many sessions were dropped
func (s *Service) Prune() int {
	return s.carts.Prune() + s.checkouts.Prune() + s.histories.Prune()
}

// RunJanitor prunes idle sessions every interval until ctx is done
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				s.cfg.Logger.Debug("pruned idle sessions", zap.Int("count", n))
			}
		}
	}
}
