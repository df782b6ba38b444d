package catalog

// Lookup is the outcome of resolving one product id: either Found with the
// product, or Absent with the reason the lookup failed.
type Lookup struct {
	ProductID string
	product   *Product
	reason    string
}

// Found wraps a resolved product
func Found(p Product) Lookup {
	return Lookup{ProductID: p.ID, product: &p}
}

// Absent records that productID could not be resolved
func Absent(productID, reason string) Lookup {
	return Lookup{ProductID: productID, reason: reason}
}

// IsFound reports whether the product was resolved
func (l Lookup) IsFound() bool {
	return l.product != nil
}

// Product returns the resolved product; ok is false for an absent lookup
func (l Lookup) Product() (Product, bool) {
	if l.product == nil {
		return Product{}, false
	}
	return *l.product, true
}

// Reason is the failure description of an absent lookup
func (l Lookup) Reason() string {
	return l.reason
}

// Lookups maps product ids to their lookup outcome
type Lookups map[string]Lookup

// Found returns the product for id when it was resolved
func (ls Lookups) Found(id string) (Product, bool) {
	l, ok := ls[id]
	if !ok {
		return Product{}, false
	}
	return l.Product()
}

// AbsentIDs lists the ids whose lookup failed
func (ls Lookups) AbsentIDs() []string {
	var ids []string
	for id, l := range ls {
		if !l.IsFound() {
			ids = append(ids, id)
		}
	}
	return ids
}
