package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/nounthanith/localbrand-frontend/internal/application/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/application/storefront"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/event"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/dto"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSessionID = "sess-1"

func init() {
	gin.SetMode(gin.TestMode)
}

// MockProductSource is a mock implementation of catalog.ProductSource
type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductSource) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// MockOrderGateway is a mock implementation of order.Gateway
type MockOrderGateway struct {
	mock.Mock
}

func (m *MockOrderGateway) Place(ctx context.Context, req order.PlaceOrderRequest) (*order.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderGateway) FindByPhone(ctx context.Context, phone string) ([]order.Order, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func newProduct(id, name, price string) *catalog.Product {
	return &catalog.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

type testEnv struct {
	t        *testing.T
	service  *storefront.Service
	hub      *event.Hub
	products *MockProductSource
	gateway  *MockOrderGateway
	streams  *CartStreamHandler
	health   *HealthHandler
	router   *gin.Engine
}

// newTestEnv wires the handlers over an in-memory storefront. Products p1
// ($10) and p2 ($5) exist; any other id is unknown.
func newTestEnv(t *testing.T, streamOpts ...CartStreamOption) *testEnv {
	t.Helper()

	products := new(MockProductSource)
	products.On("FindByID", mock.Anything, "p1").Return(newProduct("p1", "Tee", "10"), nil).Maybe()
	products.On("FindByID", mock.Anything, "p2").Return(newProduct("p2", "Cap", "5"), nil).Maybe()
	products.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound).Maybe()
	gateway := new(MockOrderGateway)

	hub := event.NewHub(zap.NewNop())
	service := storefront.NewService(storefront.Config{
		Slots:   storage.NewSessionSlots(storage.NewMemoryBackend()),
		Events:  hub,
		Catalog: appcatalog.NewLookupService(products),
		Gateway: gateway,
	})

	env := &testEnv{
		t:        t,
		service:  service,
		hub:      hub,
		products: products,
		gateway:  gateway,
		streams:  NewCartStreamHandler(service, streamOpts...),
		health:   NewHealthHandler("storefront", "test"),
	}
	t.Cleanup(env.streams.Stop)

	require.NoError(t, middleware.SetupValidator())

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Session(middleware.SessionConfig{
		CookieName: "sid",
		HeaderName: "X-Session-ID",
		TTL:        time.Hour,
	}))

	productHandler := NewProductHandler(service.Catalog())
	cartHandler := NewCartHandler(service)
	checkoutHandler := NewCheckoutHandler(service)
	ordersHandler := NewOrdersHandler(service)

	router.GET("/health", env.health.Health)
	router.GET("/products", productHandler.List)
	router.GET("/products/:id", productHandler.Get)
	router.GET("/cart", cartHandler.View)
	router.DELETE("/cart", cartHandler.Clear)
	router.GET("/cart/badge", cartHandler.Badge)
	router.GET("/cart/stream", env.streams.Stream)
	router.POST("/cart/items", cartHandler.AddItem)
	router.PUT("/cart/items/:productId", cartHandler.UpdateItem)
	router.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	router.GET("/checkout", checkoutHandler.Get)
	router.POST("/checkout", checkoutHandler.Submit)
	router.GET("/orders", ordersHandler.Get)
	router.PUT("/orders/selection", ordersHandler.Select)
	env.router = router

	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Session-ID", testSessionID)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
}
