package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockProductLookup is a mock implementation of ProductLookup
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) LookupAll(ctx context.Context, ids []string) (catalog.Lookups, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalog.Lookups), args.Error(1)
}

// failingSlots fails every operation
type failingSlots struct{ err error }

func (f failingSlots) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingSlots) Set(context.Context, string, string) error         { return f.err }
func (f failingSlots) Delete(context.Context, string) error              { return f.err }

func newTestStore(t *testing.T) (*Store, shared.SlotStore, *MockEventPublisher) {
	t.Helper()
	slots := storage.NewSessionSlots(storage.NewMemoryBackend()).ForSession("s1")
	pub := new(MockEventPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewStore("s1", slots, pub), slots, pub
}

func changedEvents(pub *MockEventPublisher) []*cart.ChangedEvent {
	var out []*cart.ChangedEvent
	for _, call := range pub.Calls {
		if call.Method != "Publish" {
			continue
		}
		for _, e := range call.Arguments.Get(1).([]shared.DomainEvent) {
			out = append(out, e.(*cart.ChangedEvent))
		}
	}
	return out
}

func TestStore_AddTwiceIncrements(t *testing.T) {
	store, _, pub := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrIncrement(ctx, "p1", 1))
	require.NoError(t, store.AddOrIncrement(ctx, "p1", 1))

	entries, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []cart.Entry{{ProductID: "p1", Quantity: 2}}, entries)

	events := changedEvents(pub)
	require.Len(t, events, 2)
	assert.Equal(t, cart.ReasonAdded, events[1].Reason)
	assert.Equal(t, "s1", events[1].SessionID())
	assert.Equal(t, 2, events[1].ItemCount)
}

func TestStore_AddRejectsInvalidDelta(t *testing.T) {
	store, _, pub := newTestStore(t)

	err := store.AddOrIncrement(context.Background(), "p1", 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Empty(t, changedEvents(pub))
}

func TestStore_SetQuantity(t *testing.T) {
	store, _, pub := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddOrIncrement(ctx, "p1", 1))

	tests := []struct {
		name     string
		id       string
		quantity int
		changed  bool
		want     int
	}{
		{"zero is ignored", "p1", 0, false, 1},
		{"negative is ignored", "p1", -3, false, 1},
		{"unknown product is ignored", "p9", 4, false, 1},
		{"overwrite", "p1", 5, true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(changedEvents(pub))
			changed, err := store.SetQuantity(ctx, tt.id, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)

			entries, err := store.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries[0].Quantity)

			wantEvents := before
			if tt.changed {
				wantEvents++
			}
			assert.Len(t, changedEvents(pub), wantEvents)
		})
	}
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	store, _, pub := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddOrIncrement(ctx, "p1", 1))

	removed, err := store.Remove(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, changedEvents(pub), 1)

	removed, err = store.Remove(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, cart.ReasonRemoved, changedEvents(pub)[1].Reason)
}

func TestStore_ClearThenRead(t *testing.T) {
	store, slots, pub := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddOrIncrement(ctx, "p1", 2))
	require.NoError(t, store.AddOrIncrement(ctx, "p2", 1))

	require.NoError(t, store.Clear(ctx))

	entries, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, found, err := slots.Get(ctx, shared.SlotCart)
	require.NoError(t, err)
	assert.False(t, found)

	events := changedEvents(pub)
	assert.Equal(t, cart.ReasonCleared, events[len(events)-1].Reason)
	assert.Equal(t, 0, events[len(events)-1].ItemCount)
}

func TestStore_ClearEmptyStillNotifies(t *testing.T) {
	store, _, pub := newTestStore(t)
	require.NoError(t, store.Clear(context.Background()))
	assert.Len(t, changedEvents(pub), 1)
}

func TestStore_CorruptValueReadsEmpty(t *testing.T) {
	store, slots, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, slots.Set(ctx, shared.SlotCart, "{not json"))

	entries, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, store.AddOrIncrement(ctx, "p1", 1))
	raw, _, err := slots.Get(ctx, shared.SlotCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1","quantity":1}]`, raw)
}

func TestStore_Badge(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	badge, err := store.Badge(ctx)
	require.NoError(t, err)
	assert.Equal(t, Badge{Count: 0, Label: ""}, badge)

	require.NoError(t, store.AddOrIncrement(ctx, "p1", 4))
	require.NoError(t, store.AddOrIncrement(ctx, "p2", 6))

	badge, err = store.Badge(ctx)
	require.NoError(t, err)
	assert.Equal(t, Badge{Count: 10, Label: "9+"}, badge)
}

func TestStore_StorageErrors(t *testing.T) {
	boom := errors.New("backend down")
	pub := new(MockEventPublisher)
	store := NewStore("s1", failingSlots{err: boom}, pub)
	ctx := context.Background()

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, boom)

	err = store.AddOrIncrement(ctx, "p1", 1)
	assert.ErrorIs(t, err, boom)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestStore_PublishFailureDoesNotFailWrite(t *testing.T) {
	slots := storage.NewSessionSlots(storage.NewMemoryBackend()).ForSession("s1")
	pub := new(MockEventPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus closed"))
	store := NewStore("s1", slots, pub)

	require.NoError(t, store.AddOrIncrement(context.Background(), "p1", 1))
	entries, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_View(t *testing.T) {
	slots := storage.NewSessionSlots(storage.NewMemoryBackend()).ForSession("s1")
	pub := new(MockEventPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	lookup := new(MockProductLookup)
	lookup.On("LookupAll", mock.Anything, []string{"p1", "p2"}).Return(catalog.Lookups{
		"p1": catalog.Found(catalog.Product{ID: "p1", Price: decimal.NewFromInt(10)}),
		"p2": catalog.Absent("p2", "lookup failed"),
	}, nil)

	store := NewStore("s1", slots, pub, WithProductLookup(lookup))
	ctx := context.Background()
	require.NoError(t, store.AddOrIncrement(ctx, "p1", 2))
	require.NoError(t, store.AddOrIncrement(ctx, "p2", 1))

	view, err := store.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "20.00", view.Total.StringFixed())
	assert.Equal(t, []string{"p2"}, view.Missing)

	entries, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "missing products stay persisted")
}

func TestStore_ViewWithoutLookup(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.View(context.Background())
	assert.Error(t, err)
}
