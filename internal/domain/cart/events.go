package cart

import (
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
)

// EventTypeCartChanged is published after every persisted cart mutation
const EventTypeCartChanged = "cart.changed"

// ChangeReason describes which mutation produced a ChangedEvent
type ChangeReason string

const (
	ReasonAdded   ChangeReason = "added"
	ReasonUpdated ChangeReason = "updated"
	ReasonRemoved ChangeReason = "removed"
	ReasonCleared ChangeReason = "cleared"
)

// ChangedEvent tells subscribers to re-read the session's cart
type ChangedEvent struct {
	shared.BaseDomainEvent
	Reason    ChangeReason `json:"reason"`
	ProductID string       `json:"product_id,omitempty"`
	ItemCount int          `json:"item_count"`
	// Origin is the id of the process that made the change
	Origin string `json:"origin,omitempty"`
}

// NewChangedEvent creates a ChangedEvent for the session
func NewChangedEvent(sessionID string, reason ChangeReason, productID string, itemCount int) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartChanged, sessionID),
		Reason:          reason,
		ProductID:       productID,
		ItemCount:       itemCount,
	}
}
