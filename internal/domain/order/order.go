package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// labelLength is the number of trailing id characters shown in an order label
const labelLength = 6

// Order is a purchase record created by the remote API
type Order struct {
	ID              string            `json:"id"`
	Items           []Item            `json:"items"`
	ShippingAddress ShippingAddresses `json:"shippingAddress"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Item is one ordered product. The API returns the product either as an id
// or as the embedded product record.
type Item struct {
	ProductID string           `json:"productId"`
	Product   *catalog.Product `json:"product,omitempty"`
	Quantity  int              `json:"quantity"`
	Amount    decimal.Decimal  `json:"amount"`
}

// UnmarshalJSON accepts "_id" for the order id
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var v struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Order(v.plain)
	if o.ID == "" {
		o.ID = v.MongoID
	}
	return nil
}

// UnmarshalJSON decodes "product" as either an id string or an object
func (i *Item) UnmarshalJSON(data []byte) error {
	var v struct {
		Product  json.RawMessage `json:"product"`
		Quantity int             `json:"quantity"`
		Amount   json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	i.Quantity = v.Quantity
	i.Amount = decimal.Zero
	if amount := strings.Trim(strings.TrimSpace(string(v.Amount)), `"`); amount != "" && amount != "null" {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return err
		}
		i.Amount = d
	}

	raw := strings.TrimSpace(string(v.Product))
	switch {
	case raw == "" || raw == "null":
	case strings.HasPrefix(raw, "{"):
		var p catalog.Product
		if err := json.Unmarshal(v.Product, &p); err != nil {
			return err
		}
		i.Product = &p
		i.ProductID = p.ID
	default:
		if err := json.Unmarshal(v.Product, &i.ProductID); err != nil {
			return err
		}
	}
	return nil
}

// Label is "#" followed by the last six characters of the id, upper-cased
func (o Order) Label() string {
	id := o.ID
	if len(id) > labelLength {
		id = id[len(id)-labelLength:]
	}
	return "#" + strings.ToUpper(id)
}

// Total sums product price × quantity over items with an embedded product
func (o Order) Total() valueobject.Money {
	total := valueobject.ZeroUSD()
	for _, item := range o.Items {
		if item.Product == nil {
			continue
		}
		total = total.MustAdd(item.Product.LineTotal(item.Quantity))
	}
	return total
}

// ItemCount sums item quantities
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
