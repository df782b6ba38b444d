package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("twelve", USD)
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(20))
	b := NewMoneyUSD(decimal.NewFromInt(5))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "25.00", sum.StringFixed())

	_, err = a.Add(Zero(KHR))
	assert.Error(t, err)
	assert.Panics(t, func() { a.MustAdd(Zero(KHR)) })
}

func TestMoney_MultiplyByInt(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int64
		expected string
	}{
		{"whole dollars", "10", 2, "20.00"},
		{"cents", "19.99", 3, "59.97"},
		{"zero quantity", "5", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.price, USD)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.MultiplyByInt(tt.quantity).StringFixed())
		})
	}
}

func TestMoney_Equals(t *testing.T) {
	assert.True(t, ZeroUSD().Equals(NewMoneyUSD(decimal.Zero)))
	assert.False(t, ZeroUSD().Equals(Zero(KHR)))
	assert.True(t, ZeroUSD().IsZero())
	assert.False(t, ZeroUSD().IsNegative())
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyUSD(decimal.RequireFromString("25"))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"25.00","currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.5"}`), &decoded))
	assert.Equal(t, USD, decoded.Currency())
	assert.Equal(t, "12.50", decoded.StringFixed())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc"}`), &decoded))
}
