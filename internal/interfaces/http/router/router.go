// Package router mounts the storefront handlers under the versioned API prefix.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/nounthanith/localbrand-frontend/docs"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// RegisterDocs serves the Swagger UI and doc.json under /swagger behind the
// given middleware
func (r *Router) RegisterDocs(guards ...gin.HandlerFunc) *Router {
	handlers := append(guards, ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/swagger/*any", handlers...)
	return r
}

// Handlers are the storefront endpoints
type Handlers struct {
	Health     *handler.HealthHandler
	Products   *handler.ProductHandler
	Cart       *handler.CartHandler
	CartStream *handler.CartStreamHandler
	Checkout   *handler.CheckoutHandler
	Orders     *handler.OrdersHandler
}

// RegisterStorefront adds the storefront route groups to r
func (r *Router) RegisterStorefront(h Handlers) *Router {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.Health.Health)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.Get)

	cart := NewDomainGroup("cart", "/cart")
	cart.GET("", h.Cart.View)
	cart.DELETE("", h.Cart.Clear)
	cart.GET("/badge", h.Cart.Badge)
	cart.GET("/stream", h.CartStream.Stream)
	items := cart.Group("cart-items", "/items")
	items.POST("", h.Cart.AddItem)
	items.PUT("/:productId", h.Cart.UpdateItem)
	items.DELETE("/:productId", h.Cart.RemoveItem)

	checkout := NewDomainGroup("checkout", "/checkout")
	checkout.GET("", h.Checkout.Get)
	checkout.POST("", h.Checkout.Submit)

	orders := NewDomainGroup("orders", "/orders")
	orders.GET("", h.Orders.Get)
	orders.PUT("/selection", h.Orders.Select)

	return r.Register(system).Register(products).Register(cart).Register(checkout).Register(orders)
}

// DomainGroup collects the routes of one area of the API
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, handlers)
}

func (dg *DomainGroup) add(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
