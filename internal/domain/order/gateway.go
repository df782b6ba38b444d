package order

import "context"

// Gateway submits and queries orders on the remote API
type Gateway interface {
	// Place creates an order. When the API explains a rejection, the
	// returned error implements MessageCarrier.
	Place(ctx context.Context, req PlaceOrderRequest) (*Order, error)
	// FindByPhone lists orders for a contact phone, most recent first as
	// returned by the API. An unknown phone yields an empty list.
	FindByPhone(ctx context.Context, phone string) ([]Order, error)
}

// MessageCarrier is implemented by errors that hold a message fit to show
// to the shopper
type MessageCarrier interface {
	UserMessage() string
}
