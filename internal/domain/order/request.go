package order

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the body sent to create an order
type PlaceOrderRequest struct {
	ShippingAddress []ShippingAddress `json:"shippingAddress"`
	Items           []RequestItem     `json:"items"`
}

// RequestItem references a product by id. Amount is the unit price known to
// the client at submission time, 0 when the product could not be resolved.
type RequestItem struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewPlaceOrderRequest assembles a request for a single shipping address
func NewPlaceOrderRequest(address ShippingAddress, items []RequestItem) PlaceOrderRequest {
	return PlaceOrderRequest{
		ShippingAddress: []ShippingAddress{address},
		Items:           items,
	}
}

// MarshalJSON writes amount as a JSON number
func (i RequestItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Product  string      `json:"product"`
		Quantity int         `json:"quantity"`
		Amount   json.Number `json:"amount"`
	}{
		Product:  i.Product,
		Quantity: i.Quantity,
		Amount:   json.Number(i.Amount.String()),
	})
}
