package shared

import "context"

// Well-known storage slot keys
const (
	SlotCart  = "cart"
	SlotPhone = "phone"
)

// SlotStore is a persistent key-value store holding small string values.
// Implementations must return found=false, not an error, for a missing key.
type SlotStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SessionSlots opens the slot namespace belonging to one visitor session.
type SessionSlots interface {
	ForSession(sessionID string) SlotStore
}
