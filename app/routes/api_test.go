package routes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/internal/kernel"
	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
	"github.com/shashiranjanraj/decorhub/pkg/payment"
	"github.com/shashiranjanraj/decorhub/pkg/payment/paymenttest"
	"github.com/shashiranjanraj/decorhub/pkg/testkit"
)

const secret = "routes-test-secret"

var today = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store    repositories.Store
	payments *paymenttest.Gateway
	runner   *testkit.Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	payments := paymenttest.New()
	f := newFixtureWith(t, payments)
	f.payments = payments
	return f
}

func newFixtureWith(t *testing.T, gateway payment.Gateway) *fixture {
	t.Helper()

	store := repositories.NewMemoryStore()
	seedUsers(t, store)

	verifier := auth.NewJWTVerifier(secret)
	k := kernel.NewHTTPKernel(kernel.Dependencies{
		Store:    store,
		Payments: gateway,
		Verifier: verifier,
		CORS:     middleware.DefaultCORSOptions("http://client.test"),
		Checkout: services.CheckoutConfig{ClientDomain: "http://client.test"},
		Clock:    func() time.Time { return today },
	})

	token := func(actor string) string {
		tok, err := verifier.GenerateToken(actor, time.Hour)
		require.NoError(t, err)
		return tok
	}
	return &fixture{store: store, runner: testkit.NewRunner(k.Handler(), token)}
}

func seedUsers(t *testing.T, store repositories.Store) {
	t.Helper()
	for _, u := range []models.User{
		{Email: "root@decorhub.test", Role: models.RoleAdmin},
		{Email: "dina@decorhub.test", Role: models.RoleDecorator, AccountStatus: models.AccountAvailable},
		{Email: "cara@example.com", Role: models.RoleUser, AccountStatus: models.AccountAvailable},
	} {
		u := u
		u.CreatedAt, u.LastLogin = today, today
		_, err := store.Users.InsertIfAbsent(context.Background(), &u)
		require.NoError(t, err)
	}
}

func TestAPIFlows(t *testing.T) {
	f := newFixture(t)

	f.runner.Run(t, "testdata/01_access.json")
	f.runner.Run(t, "testdata/02_users.json")
	f.runner.Run(t, "testdata/03_catalog.json")
	f.runner.Run(t, "testdata/04_checkout.json")

	// The customer pays on the hosted page.
	f.payments.Complete("cs_test_1", "pi_test_1")

	f.runner.Run(t, "testdata/05_orders.json")
}

func TestCheckoutThroughStripe(t *testing.T) {
	mt := testkit.NewMockTransport()
	f := newFixtureWith(t, payment.NewStripe("sk_test_routes", payment.StripeBackends(mt.Client(), "https://api.stripe.test")))
	f.runner.WithTransport(mt)
	f.runner.Set("serviceId", "65a1f0c2b3d4e5f60718293a")

	f.runner.Run(t, "testdata/stripe/checkout_flow.json")

	orders, err := f.store.Orders.List(context.Background(), repositories.OrderFilter{CustomerEmail: "cara@example.com"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "Birthday", orders[0].Category)
}

func TestAdminDeletesAnyOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.store.Orders.InsertIfAbsent(ctx, &models.Order{
		TransactionID: "pi_other",
		CustomerEmail: "cara@example.com",
		Category:      "Wedding",
		Price:         900,
		Status:        models.OrderPending,
		CreatedAt:     today.Unix(),
	})
	require.NoError(t, err)
	f.runner.Set("orderId", res.ID)

	f.runner.Run(t, "testdata/admin_delete.json")

	list, err := f.store.Orders.List(ctx, repositories.OrderFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}
