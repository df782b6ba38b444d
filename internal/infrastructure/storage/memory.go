package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps slots in process memory. Values do not survive a
// restart and are not shared between processes.
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[string]map[string]string // session -> key -> value
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string]map[string]string)}
}

// GetSlot implements Backend
func (m *MemoryBackend) GetSlot(ctx context.Context, sessionID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[sessionID][key]
	return v, ok, nil
}

// SetSlot implements Backend
func (m *MemoryBackend) SetSlot(ctx context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.slots[sessionID]
	if !ok {
		session = make(map[string]string)
		m.slots[sessionID] = session
	}
	session[key] = value
	return nil
}

// DeleteSlot implements Backend
func (m *MemoryBackend) DeleteSlot(ctx context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.slots[sessionID]
	if !ok {
		return nil
	}
	delete(session, key)
	if len(session) == 0 {
		delete(m.slots, sessionID)
	}
	return nil
}

// SessionCount returns the number of sessions holding at least one slot
func (m *MemoryBackend) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}

var _ Backend = (*MemoryBackend)(nil)
