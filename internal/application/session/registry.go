// Package session keeps per-visitor application state in memory.
package session

import (
	"strings"
	"sync"
	"time"
)

// Registry lazily creates one value per session id and keeps it until it
// has been idle longer than the configured TTL.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	factory func(sessionID string) T
	idleTTL time.Duration
	now     func() time.Time
}

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// RegistryOption configures a Registry
type RegistryOption func(*registryOptions)

type registryOptions struct {
	idleTTL time.Duration
	now     func() time.Time
}

// WithIdleTTL sets how long an untouched session is kept. Zero keeps
// sessions forever.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.idleTTL = ttl
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) RegistryOption {
	return func(o *registryOptions) {
		o.now = now
	}
}

// NewRegistry creates a registry building values with factory
func NewRegistry[T any](factory func(sessionID string) T, opts ...RegistryOption) *Registry[T] {
	o := registryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		entries: make(map[string]*entry[T]),
		factory: factory,
		idleTTL: o.idleTTL,
		now:     o.now,
	}
}

// Get returns the value for sessionID, creating it on first use
func (r *Registry[T]) Get(sessionID string) T {
	sessionID = strings.TrimSpace(sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[sessionID]; ok {
		e.lastSeen = now
		return e.value
	}
	e := &entry[T]{value: r.factory(sessionID), lastSeen: now}
	r.entries[sessionID] = e
	return e.value
}

// Peek returns the value for sessionID without creating or touching it
func (r *Registry[T]) Peek(sessionID string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[strings.TrimSpace(sessionID)]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Remove drops the value for sessionID
func (r *Registry[T]) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, strings.TrimSpace(sessionID))
}

// Prune drops sessions idle longer than the TTL and returns how many were
// dropped.
func (r *Registry[T]) Prune() int {
	if r.idleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	pruned := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of live sessions
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
