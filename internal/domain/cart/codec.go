package cart

import (
	"encoding/json"
	"strings"
)

// Decode parses a persisted cart value. A blank or unparsable value yields an
// empty cart; corrupt storage is never an error.
func Decode(raw string) *Cart {
	if strings.TrimSpace(raw) == "" {
		return New(nil)
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return New(nil)
	}
	return New(entries)
}

// Encode serializes the cart as a JSON array of {productId, quantity}
func Encode(c *Cart) (string, error) {
	data, err := json.Marshal(c.Entries())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
