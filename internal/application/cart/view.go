package cart

import (
	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared/valueobject"
)

// Line is one priced cart entry
type Line struct {
	Product   catalog.Product   `json:"product"`
	Quantity  int               `json:"quantity"`
	LineTotal valueobject.Money `json:"lineTotal"`
}

// View is the cart as displayed: lines for resolved products, totals, and the
// ids whose product could not be resolved. Missing ids stay in storage.
type View struct {
	Lines     []Line            `json:"lines"`
	Subtotal  valueobject.Money `json:"subtotal"`
	Shipping  valueobject.Money `json:"shipping"`
	Total     valueobject.Money `json:"total"`
	ItemCount int               `json:"itemCount"`
	Missing   []string          `json:"missing"`
}

// BuildView prices entries using lookups. Shipping is always free.
func BuildView(entries []cart.Entry, lookups catalog.Lookups) View {
	v := View{
		Lines:    make([]Line, 0, len(entries)),
		Subtotal: valueobject.ZeroUSD(),
		Shipping: valueobject.ZeroUSD(),
		Missing:  []string{},
	}
	for _, e := range entries {
		p, ok := lookups.Found(e.ProductID)
		if !ok {
			v.Missing = append(v.Missing, e.ProductID)
			continue
		}
		line := Line{Product: p, Quantity: e.Quantity, LineTotal: p.LineTotal(e.Quantity)}
		v.Lines = append(v.Lines, line)
		v.Subtotal = v.Subtotal.MustAdd(line.LineTotal)
		v.ItemCount += e.Quantity
	}
	v.Total = v.Subtotal.MustAdd(v.Shipping)
	return v
}
