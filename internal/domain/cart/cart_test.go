package cart

import (
	"errors"
	"testing"

	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("drops invalid entries and merges duplicates", func(t *testing.T) {
		c := New([]Entry{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "", Quantity: 3},
			{ProductID: "p2", Quantity: 0},
			{ProductID: "p1", Quantity: 1},
			{ProductID: " p3 ", Quantity: 1},
		})

		assert.Equal(t, []Entry{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p3", Quantity: 1},
		}, c.Entries())
	})

	t.Run("nil entries give an empty cart", func(t *testing.T) {
		c := New(nil)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, 0, c.ItemCount())
	})
}

func TestCart_AddOrIncrement(t *testing.T) {
	t.Run("adding the same product twice increments quantity", func(t *testing.T) {
		c := New(nil)
		require.NoError(t, c.AddOrIncrement("p1", 1))
		require.NoError(t, c.AddOrIncrement("p1", 1))

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 2, c.Quantity("p1"))
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		c := New(nil)
		require.NoError(t, c.AddOrIncrement("p2", 1))
		require.NoError(t, c.AddOrIncrement("p1", 3))
		require.NoError(t, c.AddOrIncrement("p2", 2))

		assert.Equal(t, []string{"p2", "p1"}, c.ProductIDs())
		assert.Equal(t, 3, c.Quantity("p2"))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		c := New(nil)

		err := c.AddOrIncrement("", 1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		err = c.AddOrIncrement("p1", 0)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		changed  bool
		expected int
	}{
		{"overwrites quantity", 5, true, 5},
		{"zero is a no-op", 0, false, 2},
		{"negative is a no-op", -3, false, 2},
		{"same quantity is not a change", 2, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New([]Entry{{ProductID: "p1", Quantity: 2}})
			assert.Equal(t, tt.changed, c.SetQuantity("p1", tt.quantity))
			assert.Equal(t, tt.expected, c.Quantity("p1"))
		})
	}

	t.Run("unknown product is a no-op", func(t *testing.T) {
		c := New([]Entry{{ProductID: "p1", Quantity: 2}})
		assert.False(t, c.SetQuantity("p9", 4))
		assert.Equal(t, 1, c.Len())
	})
}

func TestCart_Remove(t *testing.T) {
	c := New([]Entry{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}})

	assert.False(t, c.Remove("missing"))
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove("p1"))
	assert.Equal(t, []Entry{{ProductID: "p2", Quantity: 1}}, c.Entries())
}

func TestCart_Clear(t *testing.T) {
	c := New([]Entry{{ProductID: "p1", Quantity: 2}})
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Entries())
}

func TestCart_EntriesIsACopy(t *testing.T) {
	c := New([]Entry{{ProductID: "p1", Quantity: 2}})
	entries := c.Entries()
	entries[0].Quantity = 99
	assert.Equal(t, 2, c.Quantity("p1"))
}

func TestBadgeLabel(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, ""},
		{1, "1"},
		{9, "9"},
		{10, "9+"},
		{42, "9+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BadgeLabel(tt.count), "count %d", tt.count)
	}

	c := New([]Entry{{ProductID: "p1", Quantity: 7}, {ProductID: "p2", Quantity: 4}})
	assert.Equal(t, 11, c.ItemCount())
	assert.Equal(t, "9+", c.BadgeLabel())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []Entry
	}{
		{"blank", "", []Entry{}},
		{"corrupt", "{not json", []Entry{}},
		{"wrong shape", `{"productId":"p1"}`, []Entry{}},
		{"valid", `[{"productId":"p1","quantity":2},{"productId":"p2","quantity":1}]`,
			[]Entry{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.raw).Entries())
		})
	}
}

func TestEncode(t *testing.T) {
	raw, err := Encode(New([]Entry{{ProductID: "p1", Quantity: 2}}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1","quantity":2}]`, raw)

	raw, err = Encode(New(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestNewChangedEvent(t *testing.T) {
	e := NewChangedEvent("s1", ReasonAdded, "p1", 3)
	assert.Equal(t, EventTypeCartChanged, e.EventType())
	assert.Equal(t, "s1", e.SessionID())
	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, 3, e.ItemCount)
}
