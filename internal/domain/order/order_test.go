package order

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderJSON = `{
	"_id": "65f0c2a9e4b0a1b2c3d4e5f6",
	"createdAt": "2025-03-01T10:00:00Z",
	"shippingAddress": [{"name":"Dara","phone":"012345678","address":"St 271","province":"phnompenh","note":"call first"}],
	"items": [
		{"product": {"_id":"p1","name":"Krama","price":10,"images":["/img/k.jpg"]}, "quantity": 2, "amount": 10},
		{"product": {"_id":"p2","name":"Bag","price":"5.50"}, "quantity": 1, "amount": "5.50"},
		{"product": "p3", "quantity": 4}
	]
}`

func TestOrder_UnmarshalJSON(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(orderJSON), &o))

	assert.Equal(t, "65f0c2a9e4b0a1b2c3d4e5f6", o.ID)
	assert.Equal(t, 2025, o.CreatedAt.Year())
	require.Len(t, o.Items, 3)

	require.NotNil(t, o.Items[0].Product)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, "Krama", o.Items[0].Product.Name)
	assert.True(t, o.Items[1].Amount.Equal(decimal.RequireFromString("5.5")))

	assert.Nil(t, o.Items[2].Product)
	assert.Equal(t, "p3", o.Items[2].ProductID)
	assert.True(t, o.Items[2].Amount.IsZero())

	addr, ok := o.ShippingAddress.Primary()
	require.True(t, ok)
	assert.Equal(t, "Dara", addr.Name)
	assert.Equal(t, "call first", addr.Note)
}

func TestShippingAddresses_SingleObject(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","shippingAddress":{"name":"Sok","province":"kep"}}`), &o))

	addr, ok := o.ShippingAddress.Primary()
	require.True(t, ok)
	assert.Equal(t, "Sok", addr.Name)
	assert.Equal(t, "abc", o.ID)

	_, ok = ShippingAddresses(nil).Primary()
	assert.False(t, ok)
}

func TestOrder_Label(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"65f0c2a9e4b0a1b2c3d4e5f6", "#D4E5F6"},
		{"abc", "#ABC"},
		{"", "#"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Order{ID: tt.id}.Label())
	}
}

func TestOrder_Total(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(orderJSON), &o))

	assert.Equal(t, "25.50", o.Total().StringFixed(), "items without an embedded product are not priced")
	assert.Equal(t, 7, o.ItemCount())
}

func TestShippingAddress_Normalize(t *testing.T) {
	a := ShippingAddress{Name: "  Dara ", Phone: " 012 ", Address: "St 1\n", Province: " kep", Note: " "}
	assert.Equal(t, ShippingAddress{Name: "Dara", Phone: "012", Address: "St 1", Province: "kep"}, a.Normalize())
}

func TestProvinces(t *testing.T) {
	assert.Len(t, Provinces, 25)
	assert.True(t, IsValidProvince("siemreap"))
	assert.False(t, IsValidProvince("Siem Reap"))
	assert.Equal(t, "Tbong Khmum", ProvinceName("tbongkhmum"))
	assert.Equal(t, "atlantis", ProvinceName("atlantis"))
}

func TestNewPlaceOrderRequest(t *testing.T) {
	req := NewPlaceOrderRequest(
		ShippingAddress{Name: "Dara", Phone: "012345678", Address: "St 271", Province: "kandal"},
		[]RequestItem{{Product: "p1", Quantity: 2, Amount: decimal.NewFromInt(10)}},
	)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"shippingAddress":[{"name":"Dara","phone":"012345678","address":"St 271","province":"kandal","note":""}],
		"items":[{"product":"p1","quantity":2,"amount":10}]
	}`, string(data))
}
