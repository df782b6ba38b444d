// Package shopapi is the HTTP client for the remote shop API that owns the
// catalog and the orders.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultMaxResponseSize = 10 * 1024 * 1024
)

// Config configures the client
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxResponseSize int64
}

// Client calls the shop API
type Client struct {
	baseURL         string
	httpClient      *http.Client
	maxResponseSize int64
	logger          *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("shopapi: base URL must be absolute, got %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxSize := cfg.MaxResponseSize
	if maxSize <= 0 {
		maxSize = defaultMaxResponseSize
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxResponseSize: maxSize,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the API's response wrapper
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// FindAll implements catalog.ProductSource
func (c *Client) FindAll(ctx context.Context) ([]catalog.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/product", nil)
	if err != nil {
		return nil, err
	}

	var resp envelope[[]catalog.Product]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: products: %v", ErrAPIInvalidResponse, err)
	}
	if resp.Data == nil {
		return []catalog.Product{}, nil
	}
	return resp.Data, nil
}

// FindByID implements catalog.ProductSource. An unknown id yields an error
// matching both ErrProductNotFound and shared.ErrNotFound.
func (c *Client) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/product/"+url.PathEscape(id), nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", ErrProductNotFound, id, shared.ErrNotFound)
		}
		return nil, err
	}

	var resp envelope[*catalog.Product]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: product %s: %v", ErrAPIInvalidResponse, id, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProductNotFound, id, shared.ErrNotFound)
	}
	if resp.Data.ID == "" {
		resp.Data.ID = id
	}
	return resp.Data, nil
}

// Place implements order.Gateway
func (c *Client) Place(ctx context.Context, req order.PlaceOrderRequest) (*order.Order, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("shopapi: failed to encode order: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/order", payload)
	if err != nil {
		return nil, err
	}

	var resp envelope[*order.Order]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: order: %v", ErrAPIInvalidResponse, err)
	}
	if resp.Data != nil {
		return resp.Data, nil
	}

	// Some deployments answer with the bare order
	var bare order.Order
	if err := json.Unmarshal(body, &bare); err == nil && bare.ID != "" {
		return &bare, nil
	}
	return &order.Order{}, nil
}

// FindByPhone implements order.Gateway. A 404 is read as "no orders".
func (c *Client) FindByPhone(ctx context.Context, phone string) ([]order.Order, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/order/"+url.PathEscape(phone), nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return []order.Order{}, nil
		}
		return nil, err
	}

	var resp envelope[[]order.Order]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: orders: %v", ErrAPIInvalidResponse, err)
	}
	if resp.Data == nil {
		return []order.Order{}, nil
	}
	return resp.Data, nil
}

// doRequest performs one call and returns the body of a 2xx response.
// Error statuses become *APIError carrying the body's message field.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("shopapi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopapi: failed to read response: %w", err)
	}

	c.logger.Debug("shop API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		var errBody envelope[json.RawMessage]
		_ = json.Unmarshal(body, &errBody)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(errBody.Message)}
	}
	return body, nil
}

var (
	_ catalog.ProductSource = (*Client)(nil)
	_ order.Gateway         = (*Client)(nil)
)
