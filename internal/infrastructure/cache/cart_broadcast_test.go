package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/domain/cart"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient fails any command that reaches the network
func unreachableClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type recordingPublisher struct {
	events []*cart.ChangedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		if c, ok := e.(*cart.ChangedEvent); ok {
			p.events = append(p.events, c)
		}
	}
	return nil
}

func TestCartChangeMessage_RoundTrip(t *testing.T) {
	e := cart.NewChangedEvent("sess-1", cart.ReasonAdded, "p1", 3)

	data, err := json.Marshal(messageFromEvent(e, "node-a"))
	require.NoError(t, err)

	var m cartChangeMessage
	require.NoError(t, json.Unmarshal(data, &m))
	back := m.toEvent()

	assert.Equal(t, e.EventID(), back.EventID())
	assert.Equal(t, "sess-1", back.SessionID())
	assert.Equal(t, cart.ReasonAdded, back.Reason)
	assert.Equal(t, "p1", back.ProductID)
	assert.Equal(t, 3, back.ItemCount)
	assert.Equal(t, "node-a", back.Origin)
	assert.True(t, e.OccurredAt().Equal(back.OccurredAt()))
}

func TestRedisCartBroadcaster_Handle(t *testing.T) {
	b := NewRedisCartBroadcasterWithClient(unreachableClient(t), WithInstanceID("node-a"))
	ctx := context.Background()

	assert.Equal(t, []string{cart.EventTypeCartChanged}, b.EventTypes())
	assert.Equal(t, "node-a", b.InstanceID())

	t.Run("changes relayed from another process are not sent back", func(t *testing.T) {
		e := cart.NewChangedEvent("s", cart.ReasonRemoved, "p1", 0)
		e.Origin = "node-b"
		assert.NoError(t, b.Handle(ctx, e))
	})

	t.Run("local changes are published", func(t *testing.T) {
		e := cart.NewChangedEvent("s", cart.ReasonAdded, "p1", 1)
		err := b.Handle(ctx, e)
		assert.Error(t, err, "publish must reach redis for a local change")
	})
}

func TestRedisCartBroadcaster_Relay(t *testing.T) {
	b := NewRedisCartBroadcasterWithClient(unreachableClient(t), WithInstanceID("node-a"))
	pub := &recordingPublisher{}
	ctx := context.Background()

	own, _ := json.Marshal(messageFromEvent(cart.NewChangedEvent("s1", cart.ReasonAdded, "p1", 1), "node-a"))
	other, _ := json.Marshal(messageFromEvent(cart.NewChangedEvent("s2", cart.ReasonCleared, "", 0), "node-b"))

	b.relay(ctx, pub, string(own))
	b.relay(ctx, pub, "not json")
	b.relay(ctx, pub, string(other))

	require.Len(t, pub.events, 1)
	assert.Equal(t, "s2", pub.events[0].SessionID())
	assert.Equal(t, cart.ReasonCleared, pub.events[0].Reason)
	assert.Equal(t, "node-b", pub.events[0].Origin)
}

func TestRedisCartBroadcaster_CloseWithoutSubscribe(t *testing.T) {
	client := unreachableClient(t)
	b := NewRedisCartBroadcasterWithClient(client)
	assert.NoError(t, b.Close())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := client.Ping(ctx).Err()
	require.Error(t, err)
	assert.NotErrorIs(t, err, redis.ErrClosed)
}
