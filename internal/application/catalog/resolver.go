package catalog

import (
	"context"
	"sync"

	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
)

// Resolver remembers found products across calls so each one is fetched at
// most once. Absent results are returned but not remembered, so a failed id
// is fetched again on the next Resolve.
type Resolver struct {
	service *LookupService

	mu       sync.Mutex
	resolved catalog.Lookups
}

// NewResolver creates an empty resolver over service
func NewResolver(service *LookupService) *Resolver {
	return &Resolver{
		service:  service,
		resolved: make(catalog.Lookups),
	}
}

// Resolve returns lookups for ids, fetching only ids not yet resolved
func (r *Resolver) Resolve(ctx context.Context, ids []string) (catalog.Lookups, error) {
	wanted := dedupe(ids)

	r.mu.Lock()
	missing := make([]string, 0, len(wanted))
	for _, id := range wanted {
		if _, ok := r.resolved[id]; !ok {
			missing = append(missing, id)
		}
	}
	r.mu.Unlock()

	out := make(catalog.Lookups, len(wanted))
	if len(missing) > 0 {
		fetched, err := r.service.LookupAll(ctx, missing)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		for id, l := range fetched {
			out[id] = l
			if l.IsFound() {
				r.resolved[id] = l
			}
		}
		r.mu.Unlock()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range wanted {
		if l, ok := r.resolved[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

// Reset drops every remembered lookup
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = make(catalog.Lookups)
}

// Len returns the number of remembered lookups
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resolved)
}
