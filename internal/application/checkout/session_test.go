package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	appcart "github.com/nounthanith/localbrand-frontend/internal/application/cart"
	appcatalog "github.com/nounthanith/localbrand-frontend/internal/application/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/domain/shared"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/event"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

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

// MockPriceResolver is a mock implementation of PriceResolver
type MockPriceResolver struct {
	mock.Mock
}

func (m *MockPriceResolver) Resolve(ctx context.Context, ids []string) (catalog.Lookups, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalog.Lookups), args.Error(1)
}

func (m *MockPriceResolver) Reset() {
	m.Called()
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

// apiMessageError carries a message from the API error envelope
type apiMessageError struct{ msg string }

func (e apiMessageError) Error() string       { return "api: " + e.msg }
func (e apiMessageError) UserMessage() string { return e.msg }

type fixture struct {
	session  *Session
	cart     *appcart.Store
	slots    shared.SlotStore
	gateway  *MockOrderGateway
	resolver *MockPriceResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	slots := storage.NewSessionSlots(storage.NewMemoryBackend()).ForSession("s1")
	store := appcart.NewStore("s1", slots, event.NewHub(zap.NewNop()))
	gateway := new(MockOrderGateway)
	resolver := new(MockPriceResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(catalog.Lookups{
		"p1": catalog.Found(catalog.Product{ID: "p1", Price: decimal.NewFromInt(10)}),
		"p2": catalog.Absent("p2", "lookup failed"),
	}, nil).Maybe()
	resolver.On("Reset").Maybe()

	return &fixture{
		session: NewSession("s1", Deps{
			Cart:     store,
			Slots:    slots,
			Gateway:  gateway,
			Resolver: resolver,
		}),
		cart:     store,
		slots:    slots,
		gateway:  gateway,
		resolver: resolver,
	}
}

func validForm() order.ShippingAddress {
	return order.ShippingAddress{
		Name:     "Sok Dara",
		Phone:    "012 345 678",
		Address:  "Street 271, Toul Kork",
		Province: "phnompenh",
	}
}

func TestSession_SubmitSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 2))
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p2", 1))

	placed := &order.Order{ID: "65f1a2b3c4d5e6f7a8b9c0d1"}
	f.gateway.On("Place", mock.Anything, mock.MatchedBy(func(req order.PlaceOrderRequest) bool {
		return len(req.ShippingAddress) == 1 &&
			req.ShippingAddress[0].Phone == "012 345 678" &&
			len(req.Items) == 2 &&
			req.Items[0].Product == "p1" && req.Items[0].Quantity == 2 &&
			req.Items[0].Amount.Equal(decimal.NewFromInt(10)) &&
			req.Items[1].Product == "p2" && req.Items[1].Amount.IsZero()
	})).Return(placed, nil).Once()

	form := validForm()
	form.Name = "  Sok Dara  "
	conf, err := f.session.Submit(ctx, form)

	require.NoError(t, err)
	assert.Equal(t, MessageOrderPlaced, conf.Message)
	assert.Equal(t, "#B9C0D1", conf.Label)
	assert.Equal(t, StateSucceeded, f.session.State())

	entries, err := f.cart.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	phone, found, err := f.slots.Get(ctx, shared.SlotPhone)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "012 345 678", phone)
	f.gateway.AssertExpectations(t)
}

func TestSession_SubmitAfterSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 1))
	f.gateway.On("Place", mock.Anything, mock.Anything).Return(&order.Order{ID: "o1"}, nil).Once()

	_, err := f.session.Submit(ctx, validForm())
	require.NoError(t, err)

	_, err = f.session.Submit(ctx, validForm())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	f.resolver.AssertNotCalled(t, "Reset")
	snap := f.session.Open(ctx)
	assert.Equal(t, StateEditing, snap.State)
	assert.Empty(t, snap.Form.Name)
	assert.Nil(t, snap.Confirmation)
	f.resolver.AssertNumberOfCalls(t, "Reset", 1)
}

func TestSession_PricesProductAfterFailedLookup(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewSessionSlots(storage.NewMemoryBackend()).ForSession("s1")
	store := appcart.NewStore("s1", slots, event.NewHub(zap.NewNop()))
	require.NoError(t, store.AddOrIncrement(ctx, "p1", 2))

	src := new(MockProductSource)
	src.On("FindByID", mock.Anything, "p1").Return(nil, errors.New("upstream 503")).Once()
	src.On("FindByID", mock.Anything, "p1").Return(&catalog.Product{ID: "p1", Price: decimal.NewFromInt(10)}, nil)

	gateway := new(MockOrderGateway)
	gateway.On("Place", mock.Anything, mock.MatchedBy(func(req order.PlaceOrderRequest) bool {
		return len(req.Items) == 1 && req.Items[0].Amount.Equal(decimal.NewFromInt(10))
	})).Return(&order.Order{ID: "o1"}, nil).Once()

	s := NewSession("s1", Deps{
		Cart:     store,
		Slots:    slots,
		Gateway:  gateway,
		Resolver: appcatalog.NewResolver(appcatalog.NewLookupService(src)),
	})

	first, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, first.Missing)

	second, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Missing)
	assert.Equal(t, "20.00", second.Total.StringFixed())

	_, err = s.Submit(ctx, validForm())
	require.NoError(t, err)
	gateway.AssertExpectations(t)
	src.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestSession_InvalidFormStaysEditing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 1))

	form := validForm()
	form.Province = "atlantis"
	form.Phone = "abc"

	_, err := f.session.Submit(ctx, form)

	require.ErrorIs(t, err, shared.ErrInvalidInput)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"phone", "province"}, fields)
	assert.Equal(t, StateEditing, f.session.State())
	assert.Equal(t, "atlantis", f.session.Form().Province)
	f.gateway.AssertNotCalled(t, "Place", mock.Anything, mock.Anything)
}

func TestSession_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.Submit(context.Background(), validForm())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateEditing, f.session.State())
	f.gateway.AssertNotCalled(t, "Place", mock.Anything, mock.Anything)
}

func TestSession_FailureKeepsFormAndCart(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"api message", apiMessageError{msg: "Product out of stock"}, "Product out of stock"},
		{"generic", errors.New("connection refused"), MessageOrderFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			core, logs := observer.New(zapcore.DebugLevel)
			ctx := logger.WithContext(context.Background(), zap.New(core))
			require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 1))
			f.gateway.On("Place", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			_, err := f.session.Submit(ctx, validForm())

			var failed *FailedError
			require.ErrorAs(t, err, &failed)
			assert.Equal(t, tt.message, failed.UserMessage())
			assert.ErrorIs(t, err, tt.err)

			snap := f.session.Snapshot()
			assert.Equal(t, StateEditing, snap.State)
			assert.Equal(t, tt.message, snap.Message)
			assert.Equal(t, validForm(), snap.Form)

			entries, err := f.cart.Read(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
			_, found, err := f.slots.Get(ctx, shared.SlotPhone)
			require.NoError(t, err)
			assert.False(t, found)

			var path []string
			for _, entry := range logs.FilterMessage("checkout state changed").All() {
				fields := entry.ContextMap()
				path = append(path, fields["from"].(string)+">"+fields["to"].(string))
			}
			assert.Equal(t, []string{"editing>submitting", "submitting>failed", "failed>editing"}, path)
		})
	}
}

func TestSession_RetryAfterFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 1))
	f.gateway.On("Place", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
	f.gateway.On("Place", mock.Anything, mock.Anything).Return(&order.Order{ID: "o2"}, nil).Once()

	_, err := f.session.Submit(ctx, validForm())
	require.Error(t, err)

	conf, err := f.session.Submit(ctx, f.session.Form())
	require.NoError(t, err)
	assert.Equal(t, "#O2", conf.Label)
	f.gateway.AssertNumberOfCalls(t, "Place", 2)
}

func TestSession_ConcurrentSubmitPlacesOneOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 1))

	release := make(chan struct{})
	entered := make(chan struct{})
	f.gateway.On("Place", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&order.Order{ID: "o1"}, nil).Once()

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.session.Submit(ctx, validForm())
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the gateway")
	}
	assert.Equal(t, StateSubmitting, f.session.State())

	_, err := f.session.Submit(ctx, validForm())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	f.gateway.AssertNumberOfCalls(t, "Place", 1)
}

func TestSession_Summary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p1", 2))
	require.NoError(t, f.cart.AddOrIncrement(ctx, "p2", 1))

	view, err := f.session.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "20.00", view.Total.StringFixed())
	assert.Equal(t, []string{"p2"}, view.Missing)
}

func TestNewRegistry(t *testing.T) {
	built := 0
	r := NewRegistry(func(id string) *Session {
		built++
		return NewSession(id, Deps{})
	})

	assert.Same(t, r.Get("a"), r.Get("a"))
	assert.NotSame(t, r.Get("a"), r.Get("b"))
	assert.Equal(t, 2, built)
}
