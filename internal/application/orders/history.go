// Package orders shows the order history of the contact phone saved at
// checkout.
package orders

import (
	"context"
	"strings"
	"sync"

	"github.com/nounthanith/localbrand-frontend/internal/application/session"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Condition classifies a history load
type Condition string

const (
	ConditionLoaded   Condition = "loaded"
	ConditionNoPhone  Condition = "no_phone"
	ConditionNoOrders Condition = "no_orders"
	ConditionFailed   Condition = "failed"
)

// Shopper-facing messages
const (
	MessageNoPhone  = "No phone number found. Please complete the checkout process."
	MessageNoOrders = "No orders found for this phone number."
	MessageFailed   = "Failed to load order details. Please try again later."
)

// ErrOrderNotFound is returned by Select for an id not in the loaded list
var ErrOrderNotFound = shared.NewDomainError("NOT_FOUND", "Order not found")

// Result is the outcome of loading the history. Empty states are
// conditions, not errors.
type Result struct {
	Condition Condition     `json:"condition"`
	Message   string        `json:"message,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Orders    []order.Order `json:"orders"`
	Selected  *order.Order  `json:"selected,omitempty"`
}

// History is the order history view of one session
type History struct {
	slots   shared.SlotStore
	gateway order.Gateway

	mu       sync.Mutex
	phone    string
	orders   []order.Order
	selected string
}

// NewHistory creates the history view of a session
func NewHistory(slots shared.SlotStore, gateway order.Gateway) *History {
	return &History{slots: slots, gateway: gateway}
}

// Registry keeps one History per visitor session
type Registry = session.Registry[*History]

// NewRegistry creates a registry building histories with build
func NewRegistry(build func(sessionID string) *History, opts ...session.RegistryOption) *Registry {
	return session.NewRegistry(build, opts...)
}

// Load reads the saved phone and fetches its orders
func (h *History) Load(ctx context.Context) Result {
	phone, found, err := h.slots.Get(ctx, shared.SlotPhone)
	if err != nil {
		logger.L(ctx).Warn("failed to read saved phone", zap.Error(err))
		return h.store(Result{Condition: ConditionFailed, Message: MessageFailed})
	}
	if !found || strings.TrimSpace(phone) == "" {
		return h.store(Result{Condition: ConditionNoPhone, Message: MessageNoPhone})
	}
	return h.LookupByPhone(ctx, phone)
}

// LookupByPhone fetches the orders of an explicit phone
func (h *History) LookupByPhone(ctx context.Context, phone string) Result {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return h.store(Result{Condition: ConditionNoPhone, Message: MessageNoPhone})
	}

	ctx, span := telemetry.StartSpan(ctx, "orders", "lookup_by_phone")
	defer span.End()

	orders, err := h.gateway.FindByPhone(ctx, phone)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("failed to load orders", zap.Error(err))
		return h.store(Result{Condition: ConditionFailed, Message: MessageFailed, Phone: phone})
	}
	if len(orders) == 0 {
		return h.store(Result{Condition: ConditionNoOrders, Message: MessageNoOrders, Phone: phone})
	}
	return h.store(Result{Condition: ConditionLoaded, Phone: phone, Orders: orders, Selected: &orders[0]})
}

// Select switches the selected order among those already loaded
func (h *History) Select(orderID string) (*order.Order, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.orders {
		if h.orders[i].ID == orderID {
			h.selected = orderID
			o := h.orders[i]
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// Selected returns the currently selected order, if any
func (h *History) Selected() (*order.Order, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.orders {
		if h.orders[i].ID == h.selected {
			o := h.orders[i]
			return &o, true
		}
	}
	return nil, false
}

// Current returns the last loaded result with the current selection
func (h *History) Current() Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := Result{Phone: h.phone, Orders: h.orders}
	if len(h.orders) == 0 {
		r.Condition = ConditionNoOrders
		r.Message = MessageNoOrders
		if h.phone == "" {
			r.Condition = ConditionNoPhone
			r.Message = MessageNoPhone
		}
		r.Orders = []order.Order{}
		return r
	}
	r.Condition = ConditionLoaded
	for i := range h.orders {
		if h.orders[i].ID == h.selected {
			r.Selected = &h.orders[i]
		}
	}
	return r
}

func (h *History) store(r Result) Result {
	if r.Orders == nil {
		r.Orders = []order.Order{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.phone = r.Phone
	h.orders = r.Orders
	h.selected = ""
	if r.Selected != nil {
		h.selected = r.Selected.ID
	}
	return r
}
