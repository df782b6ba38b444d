package order

import (
	"encoding/json"
	"strings"
)

// ShippingAddress is the contact and delivery information entered at checkout
type ShippingAddress struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,min=6,max=20,phone"`
	Address  string `json:"address" validate:"required,max=500"`
	Province string `json:"province" validate:"required,province"`
	Note     string `json:"note" validate:"max=1000"`
}

// Normalize trims surrounding whitespace from every field
func (a ShippingAddress) Normalize() ShippingAddress {
	return ShippingAddress{
		Name:     strings.TrimSpace(a.Name),
		Phone:    strings.TrimSpace(a.Phone),
		Address:  strings.TrimSpace(a.Address),
		Province: strings.TrimSpace(a.Province),
		Note:     strings.TrimSpace(a.Note),
	}
}

// ShippingAddresses decodes either a single address object or an array of
// them; the API sends an array holding one address.
type ShippingAddresses []ShippingAddress

// UnmarshalJSON implements json.Unmarshaler
func (s *ShippingAddresses) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var one ShippingAddress
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = ShippingAddresses{one}
		return nil
	}
	var many []ShippingAddress
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Primary returns the first address, if any
func (s ShippingAddresses) Primary() (ShippingAddress, bool) {
	if len(s) == 0 {
		return ShippingAddress{}, false
	}
	return s[0], true
}
