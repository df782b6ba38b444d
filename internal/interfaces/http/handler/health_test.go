package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "storefront", resp.Name)
	assert.Empty(t, resp.Checks)
}

func TestHealthHandler_Checks(t *testing.T) {
	env := newTestEnv(t)
	env.health.AddCheck("storage", func(context.Context) error { return nil })
	env.health.AddCheck("redis", func(context.Context) error { return errors.New("connection refused") })

	w := env.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeEnvelope(t, w)
	assert.False(t, body.Success)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, map[string]string{
		"storage": "ok",
		"redis":   "connection refused",
	}, resp.Checks)
}
