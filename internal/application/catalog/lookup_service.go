// Package catalog provides product listing and the concurrent per-id product
// lookup the cart and checkout views are built from.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent fetches in one lookup batch
const DefaultWorkers = 8

// LookupService reads products from the remote catalog
type LookupService struct {
	source    catalog.ProductSource
	workers   int
	imageBase string
	metrics   *telemetry.StorefrontMetrics
}

// Option configures a LookupService
type Option func(*LookupService)

// WithWorkers sets the per-batch concurrency limit
func WithWorkers(n int) Option {
	return func(s *LookupService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithImageBase resolves relative product image paths against base
func WithImageBase(base string) Option {
	return func(s *LookupService) {
		s.imageBase = base
	}
}

// WithMetrics records lookup outcomes
func WithMetrics(m *telemetry.StorefrontMetrics) Option {
	return func(s *LookupService) {
		s.metrics = m
	}
}

// NewLookupService creates a new lookup service
func NewLookupService(source catalog.ProductSource, opts ...Option) *LookupService {
	s := &LookupService{
		source:  source,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every product for the home page
func (s *LookupService) List(ctx context.Context) ([]catalog.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog", "list")
	defer span.End()

	products, err := s.source.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for i := range products {
		products[i] = products[i].WithImageBase(s.imageBase)
	}
	return products, nil
}

// Get returns one product. Unknown ids yield an error matching
// shared.ErrNotFound.
func (s *LookupService) Get(ctx context.Context, id string) (*catalog.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "product id is required")
	}

	ctx, span := telemetry.StartSpan(ctx, "catalog", "get", telemetry.SpanAttrProductID, id)
	defer span.End()

	p, err := s.source.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resolved := p.WithImageBase(s.imageBase)
	return &resolved, nil
}

// Lookup fetches one product and reports it as Found or Absent. It never
// returns an error; the reason for an Absent result is kept on the Lookup.
func (s *LookupService) Lookup(ctx context.Context, id string) catalog.Lookup {
	p, err := s.source.FindByID(ctx, id)
	if err != nil {
		reason := "lookup failed"
		if errors.Is(err, shared.ErrNotFound) {
			reason = "not found"
		}
		logger.L(ctx).Warn("product lookup failed",
			zap.String("product_id", id),
			zap.Error(err),
		)
		s.metrics.RecordLookup(ctx, false)
		return catalog.Absent(id, reason)
	}
	if p == nil {
		s.metrics.RecordLookup(ctx, false)
		return catalog.Absent(id, "not found")
	}
	s.metrics.RecordLookup(ctx, true)
	return catalog.Found(p.WithImageBase(s.imageBase))
}

// LookupAll fetches every distinct id concurrently and waits for all of
// them. A failed fetch yields Absent for that id only; the only batch error
// is cancellation of ctx.
func (s *LookupService) LookupAll(ctx context.Context, ids []string) (catalog.Lookups, error) {
	unique := dedupe(ids)
	results := make(catalog.Lookups, len(unique))
	if len(unique) == 0 {
		return results, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "catalog", "lookup_all", telemetry.SpanAttrBatchSize, len(unique))
	defer span.End()
	start := time.Now()

	found := make([]catalog.Lookup, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range unique {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[i] = s.Lookup(gctx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, id := range unique {
		results[id] = found[i]
	}
	s.metrics.RecordLookupBatch(ctx, time.Since(start))
	return results, nil
}

// dedupe drops blank and repeated ids, keeping first-seen order
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
