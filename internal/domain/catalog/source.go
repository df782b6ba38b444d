package catalog

import "context"

// ProductSource reads products from the remote catalog.
// FindByID returns an error wrapping shared.ErrNotFound for unknown ids.
type ProductSource interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
}
