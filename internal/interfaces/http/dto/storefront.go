package dto

import (
	appcart "github.com/nounthanith/localbrand-frontend/internal/application/cart"
	"github.com/nounthanith/localbrand-frontend/internal/application/checkout"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
)

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required,max=64"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=999"`
}

// UpdateCartItemRequest sets the quantity of a cart entry. Values below one
// are accepted and ignored by the cart.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartMutationResponse reports whether a mutation changed the cart
type CartMutationResponse struct {
	Changed bool          `json:"changed"`
	Badge   appcart.Badge `json:"badge"`
}

// CheckoutRequest is the checkout form
type CheckoutRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Province string `json:"province"`
	Note     string `json:"note"`
}

// ShippingAddress converts the form to the domain value
func (r CheckoutRequest) ShippingAddress() order.ShippingAddress {
	return order.ShippingAddress{
		Name:     r.Name,
		Phone:    r.Phone,
		Address:  r.Address,
		Province: r.Province,
		Note:     r.Note,
	}
}

// CheckoutResponse is the checkout page state
type CheckoutResponse struct {
	checkout.Snapshot
	Summary   *appcart.View    `json:"summary,omitempty"`
	Provinces []order.Province `json:"provinces"`
}

// SelectOrderRequest switches the selected order
type SelectOrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// CartChangeEvent is the payload of a "cart" stream event
type CartChangeEvent struct {
	Reason    string `json:"reason"`
	ProductID string `json:"productId,omitempty"`
	Count     int    `json:"count"`
	Label     string `json:"label"`
}
