// Package routes maps the public HTTP surface onto controllers.
package routes

import (
	"github.com/shashiranjanraj/decorhub/app/controllers"
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
	"github.com/shashiranjanraj/decorhub/pkg/rbac"
	"github.com/shashiranjanraj/decorhub/pkg/router"
)

// Services is everything the routes dispatch to.
type Services struct {
	Users     *services.UserService
	Catalog   *services.CatalogService
	Checkout  *services.CheckoutService
	Orders    *services.OrderService
	Decorator *services.DecoratorService
	Analytics *services.AnalyticsService
	Health    *controllers.HealthController
}

// RegisterAPI mounts every route. Role guards re-read the caller's role from
// the user store on each request.
func RegisterAPI(r *router.Router, verifier auth.Verifier, s Services) {
	users := controllers.NewUserController(s.Users)
	catalog := controllers.NewServiceController(s.Catalog)
	checkout := controllers.NewCheckoutController(s.Checkout)
	orders := controllers.NewOrderController(s.Orders)
	decorator := controllers.NewDecoratorController(s.Decorator)
	analytics := controllers.NewAnalyticsController(s.Analytics)

	admin := rbac.Admin(s.Users)

	r.Get("/", "home", ctx.Wrap(s.Health.Home))
	r.Get("/healthz", "health", ctx.Wrap(s.Health.Ready))
	r.Get("/services", "services.index", ctx.Wrap(catalog.List))

	authed := r.Group("/", middleware.Authenticate(verifier))

	// Users
	authed.Post("/users", "users.register", ctx.Wrap(users.Register))
	authed.Patch("/users", "users.login", ctx.Wrap(users.TouchLogin))
	authed.Get("/users/role/{email}", "users.role", ctx.Wrap(users.Role))
	authed.Get("/login-users", "users.me", ctx.Wrap(users.Me))
	authed.Get("/users", "users.index", ctx.Wrap(users.List), admin)
	authed.Get("/users/decorators", "users.decorators", ctx.Wrap(users.Decorators), admin)
	authed.Patch("/users/account-status/{id}", "users.account_status", ctx.Wrap(users.SetAccountStatus), admin)
	authed.Patch("/users/role/{id}", "users.set_role", ctx.Wrap(users.SetRole), admin)
	authed.Delete("/users/delete-user/{id}", "users.delete", ctx.Wrap(users.Delete), admin)

	// Catalog
	authed.Post("/services", "services.store", ctx.Wrap(catalog.Create), admin)
	authed.Patch("/services", "services.update", ctx.Wrap(catalog.Update), admin)
	authed.Get("/services/{id}", "services.show", ctx.Wrap(catalog.Show))

	// Checkout
	authed.Post("/create-checkout-session", "checkout.session", ctx.Wrap(checkout.CreateSession))
	authed.Post("/payment-success", "checkout.confirm", ctx.Wrap(checkout.Confirm))
	authed.Get("/stripe/user-transactions/{email}", "checkout.transactions", ctx.Wrap(checkout.Transactions))

	// Orders
	authed.Get("/orders", "orders.index", ctx.Wrap(orders.All), admin)
	authed.Get("/orders/manage-booking", "orders.pending", ctx.Wrap(orders.Pending), admin)
	authed.Patch("/orders/assign", "orders.assign", ctx.Wrap(orders.Assign), admin)
	authed.Get("/orders/{email}", "orders.customer", ctx.Wrap(orders.ByCustomer))
	authed.Delete("/orders/{id}", "orders.delete", ctx.Wrap(orders.Delete))
	authed.Get("/manage-decorators-services", "orders.in_progress", ctx.Wrap(orders.InProgress), admin)

	// Decorator dashboard
	deco := r.Group("/decorator", middleware.Authenticate(verifier), rbac.Decorator(s.Users))
	deco.Get("/earnings", "decorator.earnings", ctx.Wrap(decorator.Earnings))
	deco.Get("/today-schedule", "decorator.schedule", ctx.Wrap(decorator.TodaySchedule))
	deco.Get("/projects", "decorator.projects", ctx.Wrap(decorator.Projects))
	deco.Patch("/projects/{id}", "decorator.project_status", ctx.Wrap(decorator.UpdateStatus))

	// Admin analytics
	authed.Get("/revenue", "analytics.revenue", ctx.Wrap(analytics.Revenue), admin)
	authed.Get("/service-demand", "analytics.demand", ctx.Wrap(analytics.Demand), admin)
}
