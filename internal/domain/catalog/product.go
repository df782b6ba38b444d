package catalog

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/nounthanith/localbrand-frontend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is a catalog item owned by the remote shop API. It is never
// mutated locally.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
}

// UnmarshalJSON accepts both "_id" and "id" as the product identifier
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var v struct {
		plain
		MongoID string          `json:"_id"`
		Price   json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Product(v.plain)
	if p.ID == "" {
		p.ID = v.MongoID
	}
	price, err := parsePrice(v.Price)
	if err != nil {
		return err
	}
	p.Price = price
	return nil
}

// UnitPrice returns the price as Money in the default currency
func (p Product) UnitPrice() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// LineTotal is price × quantity
func (p Product) LineTotal(quantity int) valueobject.Money {
	return p.UnitPrice().MultiplyByInt(int64(quantity))
}

// PrimaryImage returns the first image or an empty string
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// WithImageBase returns a copy whose relative image paths are resolved
// against base. Absolute URLs are kept as they are.
func (p Product) WithImageBase(base string) Product {
	if base == "" || len(p.Images) == 0 {
		return p
	}
	images := make([]string, len(p.Images))
	for i, img := range p.Images {
		images[i] = ResolveImageURL(base, img)
	}
	p.Images = images
	return p
}

// ResolveImageURL joins a relative image path onto base
func ResolveImageURL(base, img string) string {
	if img == "" || base == "" {
		return img
	}
	if u, err := url.Parse(img); err == nil && u.IsAbs() {
		return img
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(img, "/")
}

// parsePrice accepts a JSON number, a numeric string or null. Negative
// prices are clamped to zero.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, nil
	}
	return d, nil
}
