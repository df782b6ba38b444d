package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Checkout outcomes
const (
	CheckoutSucceeded = "succeeded"
	CheckoutFailed    = "failed"
	CheckoutRejected  = "rejected"
)

// StorefrontMetrics records cart, lookup, checkout and stream activity.
// All methods are no-ops on a nil receiver.
type StorefrontMetrics struct {
	cartMutations  *Counter
	lookups        *Counter
	lookupDuration *Histogram
	checkouts      *Counter
	streamClients  *UpDownCounter
}

// NewStorefrontMetrics registers the storefront instruments on meter
func NewStorefrontMetrics(meter metric.Meter) (*StorefrontMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &StorefrontMetrics{}
	var err error

	if m.cartMutations, err = NewCounter(meter,
		"storefront_cart_mutations_total", "Persisted cart mutations", "{mutations}"); err != nil {
		return nil, err
	}
	if m.lookups, err = NewCounter(meter,
		"storefront_product_lookups_total", "Product lookups by outcome", "{lookups}"); err != nil {
		return nil, err
	}
	if m.lookupDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront_product_lookup_batch_duration_seconds",
		Description: "Wall time of a concurrent product lookup batch",
		Unit:        "s",
		Boundaries:  APIDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.checkouts, err = NewCounter(meter,
		"storefront_checkout_submissions_total", "Checkout submissions by outcome", "{submissions}"); err != nil {
		return nil, err
	}
	if m.streamClients, err = NewUpDownCounter(meter,
		"storefront_cart_stream_clients", "Connected cart change streams", "{clients}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordCartMutation counts one persisted cart change
func (m *StorefrontMetrics) RecordCartMutation(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.cartMutations.Inc(ctx, AttrReason.String(reason))
}

// RecordLookup counts one product lookup result
func (m *StorefrontMetrics) RecordLookup(ctx context.Context, found bool) {
	if m == nil {
		return
	}
	outcome := "found"
	if !found {
		outcome = "absent"
	}
	m.lookups.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordLookupBatch records how long a lookup batch took
func (m *StorefrontMetrics) RecordLookupBatch(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.lookupDuration.RecordDuration(ctx, d)
}

// RecordCheckout counts one checkout submission
func (m *StorefrontMetrics) RecordCheckout(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.checkouts.Inc(ctx, AttrOutcome.String(outcome))
}

// StreamConnected tracks a new cart change stream
func (m *StorefrontMetrics) StreamConnected(ctx context.Context) {
	if m == nil {
		return
	}
	m.streamClients.Add(ctx, 1)
}

// StreamDisconnected tracks a closed cart change stream
func (m *StorefrontMetrics) StreamDisconnected(ctx context.Context) {
	if m == nil {
		return
	}
	m.streamClients.Add(ctx, -1)
}
