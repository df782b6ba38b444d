// Package checkout drives checkout submission for one visitor session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	appcart "github.com/nounthanith/localbrand-frontend/internal/application/cart"
	"github.com/nounthanith/localbrand-frontend/internal/application/session"
	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State is the checkout form state
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Shopper-facing messages
const (
	MessageOrderPlaced = "Order placed successfully!"
	MessageOrderFailed = "Failed to place order. Please try again."
)

var (
	ErrSubmissionInFlight = shared.NewDomainError("CONFLICT", "An order submission is already in progress")
	ErrEmptyCart          = shared.NewDomainError("CART_EMPTY", "Your cart is empty")
	ErrAlreadySubmitted   = shared.NewDomainError("ALREADY_SUBMITTED", "This order has already been placed")
)

// CartStore is the part of the cart store checkout needs
type CartStore interface {
	Read(ctx context.Context) ([]cart.Entry, error)
	Clear(ctx context.Context) error
}

// PriceResolver resolves products, reusing earlier results
type PriceResolver interface {
	Resolve(ctx context.Context, ids []string) (catalog.Lookups, error)
	Reset()
}

// Deps are the collaborators of a Session
type Deps struct {
	Cart     CartStore
	Slots    shared.SlotStore
	Gateway  order.Gateway
	Resolver PriceResolver
	Validate *validator.Validate
	Metrics  *telemetry.StorefrontMetrics
}

// Confirmation is returned after an order was placed
type Confirmation struct {
	Order   *order.Order `json:"order"`
	Label   string       `json:"label"`
	Message string       `json:"message"`
}

// FailedError reports a rejected submission with the message to show
type FailedError struct {
	Message string
	Err     error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("place order: %v", e.Err)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

// UserMessage implements order.MessageCarrier
func (e *FailedError) UserMessage() string {
	return e.Message
}

// Snapshot is a consistent copy of the session state
type Snapshot struct {
	State        State                 `json:"state"`
	Message      string                `json:"message,omitempty"`
	Form         order.ShippingAddress `json:"form"`
	Confirmation *Confirmation         `json:"confirmation,omitempty"`
}

// Session is the checkout of one visitor. Only one submission may run at a
// time; the form of a failed submission is kept for retry.
type Session struct {
	sessionID string
	deps      Deps

	inFlight atomic.Bool

	mu           sync.Mutex
	state        State
	form         order.ShippingAddress
	message      string
	confirmation *Confirmation
}

// NewSession creates a session in the editing state
func NewSession(sessionID string, deps Deps) *Session {
	if deps.Validate == nil {
		deps.Validate = NewFormValidator()
	}
	return &Session{
		sessionID: sessionID,
		deps:      deps,
		state:     StateEditing,
	}
}

// Registry keeps one checkout Session per visitor session
type Registry = session.Registry[*Session]

// NewRegistry creates a registry building sessions with build
func NewRegistry(build func(sessionID string) *Session, opts ...session.RegistryOption) *Registry {
	return session.NewRegistry(build, opts...)
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns the last submitted form
func (s *Session) Form() order.ShippingAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Snapshot returns the state, message, form and confirmation together
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:        s.state,
		Message:      s.message,
		Form:         s.form,
		Confirmation: s.confirmation,
	}
}

// Open is called when the checkout page is shown. A session that already
// placed its order starts over with an empty form and fresh prices.
func (s *Session) Open(ctx context.Context) Snapshot {
	s.mu.Lock()
	restart := s.state == StateSucceeded
	if restart {
		s.state = StateEditing
		s.form = order.ShippingAddress{}
		s.message = ""
		s.confirmation = nil
	}
	s.mu.Unlock()

	if restart {
		s.deps.Resolver.Reset()
	}
	return s.Snapshot()
}

// Summary prices the current cart, fetching only products not yet resolved
// by this session.
func (s *Session) Summary(ctx context.Context) (appcart.View, error) {
	entries, err := s.deps.Cart.Read(ctx)
	if err != nil {
		return appcart.View{}, err
	}
	lookups, err := s.deps.Resolver.Resolve(ctx, productIDs(entries))
	if err != nil {
		return appcart.View{}, err
	}
	return appcart.BuildView(entries, lookups), nil
}

// Submit validates form and places an order for the current cart.
//
// On success the contact phone is persisted, the cart is cleared and the
// session moves to succeeded. On failure the session passes through failed
// back to editing, keeping the form and the message to show, and a
// *FailedError is returned.
func (s *Session) Submit(ctx context.Context, form order.ShippingAddress) (*Confirmation, error) {
	if s.State() == StateSucceeded {
		return nil, ErrAlreadySubmitted
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.deps.Metrics.RecordCheckout(ctx, telemetry.CheckoutRejected)
		return nil, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	ctx, span := telemetry.StartSpan(ctx, "checkout", "submit", telemetry.SpanAttrSessionID, s.sessionID)
	defer span.End()

	form = form.Normalize()
	s.mu.Lock()
	if s.state == StateSucceeded {
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	s.form = form
	s.mu.Unlock()

	if err := s.deps.Validate.StructCtx(ctx, form); err != nil {
		s.transition(ctx, StateEditing, "", nil)
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	entries, err := s.deps.Cart.Read(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(entries) == 0 {
		s.transition(ctx, StateEditing, "", nil)
		return nil, ErrEmptyCart
	}

	s.transition(ctx, StateSubmitting, "", nil)

	placed, err := s.place(ctx, form, entries)
	if err != nil {
		telemetry.RecordError(span, err)
		msg := MessageOrderFailed
		var carrier order.MessageCarrier
		if errors.As(err, &carrier) && carrier.UserMessage() != "" {
			msg = carrier.UserMessage()
		}
		logger.L(ctx).Warn("order submission failed", zap.Error(err))
		s.deps.Metrics.RecordCheckout(ctx, telemetry.CheckoutFailed)
		s.transition(ctx, StateFailed, msg, nil)
		s.transition(ctx, StateEditing, msg, nil)
		return nil, &FailedError{Message: msg, Err: err}
	}

	if err := s.deps.Slots.Set(ctx, shared.SlotPhone, form.Phone); err != nil {
		logger.L(ctx).Error("failed to persist contact phone", zap.Error(err))
	}
	if err := s.deps.Cart.Clear(ctx); err != nil {
		logger.L(ctx).Error("failed to clear cart after order", zap.Error(err))
	}

	confirmation := &Confirmation{Order: placed, Label: placed.Label(), Message: MessageOrderPlaced}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, placed.ID)
	s.deps.Metrics.RecordCheckout(ctx, telemetry.CheckoutSucceeded)
	logger.L(ctx).Info("order placed",
		zap.String("order_id", placed.ID),
		zap.Int("items", len(entries)),
	)
	s.transition(ctx, StateSucceeded, MessageOrderPlaced, confirmation)
	return confirmation, nil
}

func (s *Session) place(ctx context.Context, form order.ShippingAddress, entries []cart.Entry) (*order.Order, error) {
	lookups, err := s.deps.Resolver.Resolve(ctx, productIDs(entries))
	if err != nil {
		return nil, err
	}
	items := make([]order.RequestItem, len(entries))
	for i, e := range entries {
		amount := decimal.Zero
		if p, ok := lookups.Found(e.ProductID); ok {
			amount = p.Price
		}
		items[i] = order.RequestItem{Product: e.ProductID, Quantity: e.Quantity, Amount: amount}
	}
	placed, err := s.deps.Gateway.Place(ctx, order.NewPlaceOrderRequest(form, items))
	if err != nil {
		return nil, err
	}
	if placed == nil {
		return nil, errors.New("empty order response")
	}
	return placed, nil
}

func (s *Session) transition(ctx context.Context, state State, message string, confirmation *Confirmation) {
	s.mu.Lock()
	from := s.state
	s.state = state
	s.message = message
	s.confirmation = confirmation
	s.mu.Unlock()

	if from != state {
		logger.L(ctx).Debug("checkout state changed",
			zap.String("from", string(from)),
			zap.String("to", string(state)),
		)
	}
}

func productIDs(entries []cart.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	return ids
}
