package cart

import (
	"strconv"
	"strings"

	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
)

// BadgeOverflow is the badge label shown once the item count passes BadgeLimit
const (
	BadgeLimit    = 9
	BadgeOverflow = "9+"
)

// Entry is one product/quantity pair in the cart
type Entry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the ordered list of entries, in insertion order, with at most one
// entry per product. The zero value is an empty cart.
type Cart struct {
	entries []Entry
}

// New builds a cart from persisted entries. Entries with an empty product id
// or a quantity below 1 are dropped and duplicates are merged into the first
// occurrence.
func New(entries []Entry) *Cart {
	c := &Cart{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		e.ProductID = strings.TrimSpace(e.ProductID)
		if e.ProductID == "" || e.Quantity < 1 {
			continue
		}
		if i := c.indexOf(e.ProductID); i >= 0 {
			c.entries[i].Quantity += e.Quantity
			continue
		}
		c.entries = append(c.entries, e)
	}
	return c
}

// Entries returns a copy of the entries in insertion order
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of distinct products
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// ProductIDs returns the product ids in insertion order
func (c *Cart) ProductIDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ProductID
	}
	return ids
}

// Quantity returns the quantity held for productID, 0 if absent
func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.entries[i].Quantity
	}
	return 0
}

// AddOrIncrement increments the quantity of an existing entry by delta, or
// appends a new entry with quantity delta.
func (c *Cart) AddOrIncrement(productID string, delta int) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return shared.NewDomainError("INVALID_INPUT", "product id cannot be empty")
	}
	if delta < 1 {
		return shared.NewDomainError("INVALID_INPUT", "quantity to add must be at least 1")
	}
	if i := c.indexOf(productID); i >= 0 {
		c.entries[i].Quantity += delta
		return nil
	}
	c.entries = append(c.entries, Entry{ProductID: productID, Quantity: delta})
	return nil
}

// SetQuantity overwrites the quantity of an existing entry. Quantities below
// 1 and unknown products are ignored; the return value reports whether the
// cart changed.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	i := c.indexOf(productID)
	if i < 0 || c.entries[i].Quantity == quantity {
		return false
	}
	c.entries[i].Quantity = quantity
	return true
}

// Remove deletes the entry for productID and reports whether one existed
func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

// Clear removes every entry
func (c *Cart) Clear() {
	c.entries = c.entries[:0]
}

// ItemCount is the sum of quantities over all entries
func (c *Cart) ItemCount() int {
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// BadgeLabel renders ItemCount for the navigation badge: empty when the cart
// is empty, "9+" past BadgeLimit.
func (c *Cart) BadgeLabel() string {
	return BadgeLabel(c.ItemCount())
}

// BadgeLabel renders an item count for the navigation badge
func BadgeLabel(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > BadgeLimit:
		return BadgeOverflow
	default:
		return strconv.Itoa(count)
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, e := range c.entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}
