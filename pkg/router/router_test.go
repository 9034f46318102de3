package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func tag(value string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	r := router.New()
	g := r.Group("/decorator", tag("auth"))
	g.Patch("/projects/{id}", "decorator.projects.update", ok, tag("role"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/decorator/projects/42", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"auth", "role"}, rec.Header().Values("X-Chain"))
}

func TestRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/services", "services.index", ok)
	r.Delete("/orders/{id}", "orders.delete", ok)
	r.Put("/noop", "", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: http.MethodDelete, Path: "/orders/{id}", Name: "orders.delete"}, routes[1])

	url, err := r.URL("orders.delete", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/abc", url)

	_, err = r.URL("orders.delete", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestNestedGroupsJoinPaths(t *testing.T) {
	r := router.New()
	api := r.Group("//api/")
	api.Group("v1").Get("/orders/", "orders.index", ok)

	p, found := r.Path("orders.index")
	require.True(t, found)
	assert.Equal(t, "/api/v1/orders", p)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDuplicateNamePanics(t *testing.T) {
	r := router.New()
	r.Get("/users", "users.index", ok)
	assert.Panics(t, func() { r.Get("/people", "users.index", ok) })
}
