package cache

import (
	"fmt"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/config"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// SlotBackendFactory creates key-value slot backends for the memory and
// redis storage drivers
type SlotBackendFactory struct {
	redisConfig           config.RedisConfig
	keyPrefix             string
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SlotBackendFactoryOption is a functional option for configuring the factory
type SlotBackendFactoryOption func(*SlotBackendFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SlotBackendFactoryOption {
	return func(f *SlotBackendFactory) {
		f.logger = logger
	}
}

// WithSlotTTL expires Redis slots that have not been written for ttl
func WithSlotTTL(ttl time.Duration) SlotBackendFactoryOption {
	return func(f *SlotBackendFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// process memory. Default is false.
func WithInMemoryFallback(allow bool) SlotBackendFactoryOption {
	return func(f *SlotBackendFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSlotBackendFactory creates a new factory
func NewSlotBackendFactory(redisCfg config.RedisConfig, keyPrefix string, opts ...SlotBackendFactoryOption) *SlotBackendFactory {
	f := &SlotBackendFactory{
		redisConfig: redisCfg,
		keyPrefix:   keyPrefix,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a backend for driver. The returned close function releases
// any connection the backend holds.
func (f *SlotBackendFactory) Create(driver string) (storage.Backend, func() error, error) {
	switch driver {
	case config.StorageMemory:
		f.logger.Warn("Using in-memory slot storage; carts are lost on restart and not shared between replicas")
		return storage.NewMemoryBackend(), noopClose, nil
	case config.StorageRedis:
		store, err := NewRedisSlotStore(f.redisConfig, f.keyPrefix, f.ttl)
		if err == nil {
			f.logger.Info("Using Redis slot storage", zap.String("addr", f.redisConfig.Addr()))
			return store, store.Close, nil
		}
		if !f.allowInMemoryFallback {
			return nil, nil, fmt.Errorf("failed to create Redis slot store: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory slot storage", zap.Error(err))
		return storage.NewMemoryBackend(), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("slot backend factory does not handle driver %q", driver)
	}
}

func noopClose() error { return nil }
