package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("json logger writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storefront.log")
		l, err := New(&Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)

		l.Debug("cart updated", zap.String("product_id", "p1"))
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"cart updated"`)
		assert.Contains(t, string(data), `"product_id":"p1"`)
	})

	t.Run("unwritable file is an error", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, expected := range tests {
		assert.Equal(t, expected, ParseLevel(in), in)
	}
}

func TestContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, _ = WithSessionID(ctx, FromContext(ctx), "sess-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "sess-1", GetSessionID(ctx))

	L(ctx).With(zap.String("product_id", "p1")).Info("product lookup failed")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.Equal(t, "p1", fields["product_id"])
	assert.NotContains(t, fields, "trace_id", "no span in context")
}

func TestFromContext_Missing(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, "", GetSessionID(context.Background()))
}

func TestTee(t *testing.T) {
	localCore, local := observer.New(zapcore.InfoLevel)
	remoteCore, remote := observer.New(zapcore.WarnLevel)

	l := Tee(zap.New(localCore), remoteCore)
	l.Info("stored")
	l.Warn("low stock", zap.String("product_id", "p1"))

	assert.Equal(t, 2, local.Len())
	require.Equal(t, 1, remote.Len())
	entry := remote.All()[0]
	assert.Equal(t, "low stock", entry.Message)
	assert.Equal(t, "p1", entry.ContextMap()["product_id"])
}

func TestTee_NoCores(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, Tee(base))
}
