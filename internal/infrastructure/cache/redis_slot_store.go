// Package cache holds the Redis-backed pieces of the storefront: the shared
// slot store and the cross-process cart change channel.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/config"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"github.com/redis/go-redis/v9"
)

const (
	defaultSlotKeyPrefix = "storefront:slot:"
	pingTimeout          = 5 * time.Second
)

// RedisSlotStore implements storage.Backend on Redis strings.
// Keys are laid out as <prefix><session>:<slot>.
type RedisSlotStore struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
	ttl        time.Duration
}

// NewRedisClient creates a client for cfg and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisSlotStore connects to Redis and returns a store that owns the client.
// A positive ttl expires a slot that has not been written for that long.
func NewRedisSlotStore(cfg config.RedisConfig, keyPrefix string, ttl time.Duration) (*RedisSlotStore, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	s := NewRedisSlotStoreWithClient(client, keyPrefix, ttl)
	s.ownsClient = true
	return s, nil
}

// NewRedisSlotStoreWithClient creates a store on an existing client.
// The caller retains ownership of the client.
func NewRedisSlotStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSlotStore {
	if keyPrefix == "" {
		keyPrefix = defaultSlotKeyPrefix
	}
	return &RedisSlotStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisSlotStore) key(sessionID, key string) string {
	return s.keyPrefix + sessionID + ":" + key
}

// GetSlot implements storage.Backend
func (s *RedisSlotStore) GetSlot(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return v, true, nil
}

// SetSlot implements storage.Backend
func (s *RedisSlotStore) SetSlot(ctx context.Context, sessionID, key, value string) error {
	if err := s.client.Set(ctx, s.key(sessionID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// DeleteSlot implements storage.Backend
func (s *RedisSlotStore) DeleteSlot(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, s.key(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *RedisSlotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client returns the underlying Redis client
func (s *RedisSlotStore) Client() *redis.Client {
	return s.client
}

// Close closes the client if the store created it
func (s *RedisSlotStore) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

var _ storage.Backend = (*RedisSlotStore)(nil)
