// Package kernel builds the HTTP handler from explicitly constructed
// dependencies. Nothing here reads configuration or global state.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/decorhub/app/controllers"
	"github.com/shashiranjanraj/decorhub/app/repositories"
	"github.com/shashiranjanraj/decorhub/app/routes"
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
	"github.com/shashiranjanraj/decorhub/pkg/metrics"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
	"github.com/shashiranjanraj/decorhub/pkg/payment"
	"github.com/shashiranjanraj/decorhub/pkg/reqid"
	"github.com/shashiranjanraj/decorhub/pkg/router"
)

// Dependencies is what the HTTP kernel is built from.
type Dependencies struct {
	Store    repositories.Store
	Payments payment.Gateway
	Verifier auth.Verifier
	Limiter  middleware.Limiter // nil disables rate limiting
	CORS     middleware.CORSOptions
	Checkout services.CheckoutConfig
	Clock    func() time.Time
}

// HTTPKernel owns the router and its global middleware.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel wires services, controllers and routes.
//
// Global middleware, outermost first:
//
//	metrics → recovery → request id → logger → CORS → rate limit
func NewHTTPKernel(d Dependencies) *HTTPKernel {
	if d.Clock == nil {
		d.Clock = time.Now
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(d.CORS))
	if d.Limiter != nil {
		r.Use(middleware.RateLimit(d.Limiter))
	}

	r.NotFound(ctx.Wrap(func(c *ctx.Context) { c.NotFound("Route not found") }))
	r.MethodNotAllowed(ctx.Wrap(func(c *ctx.Context) {
		c.Error(http.StatusMethodNotAllowed, "Method not allowed")
	}))
	r.HandleFunc("/metrics", metrics.Handler())

	users := services.NewUserService(d.Store.Users, d.Clock)
	routes.RegisterAPI(r, d.Verifier, routes.Services{
		Users:     users,
		Catalog:   services.NewCatalogService(d.Store.Services, d.Clock),
		Checkout:  services.NewCheckoutService(d.Payments, d.Store.Orders, users, d.Checkout, d.Clock),
		Orders:    services.NewOrderService(d.Store.Orders, users),
		Decorator: services.NewDecoratorService(d.Store.Orders, d.Clock),
		Analytics: services.NewAnalyticsService(d.Store.Orders),
		Health:    controllers.NewHealthController(d.Store.Ping),
	})

	return &HTTPKernel{router: r}
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes lists the registered named routes.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
