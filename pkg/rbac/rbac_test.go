package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
)

type roles map[string]string

func (m roles) RoleOf(_ context.Context, email string) (string, bool, error) {
	if email == "broken@decor.test" {
		return "", false, errors.New("store down")
	}
	r, ok := m[email]
	return r, ok, nil
}

var users = roles{
	"admin@decor.test": RoleAdmin,
	"deco@decor.test":  RoleDecorator,
	"user@decor.test":  RoleUser,
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	d, err := Authorize(ctx, users, "admin@decor.test", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, Allowed, d)

	d, _ = Authorize(ctx, users, "user@decor.test", RoleAdmin)
	assert.Equal(t, DeniedRole, d)

	d, _ = Authorize(ctx, users, "ghost@decor.test", RoleAdmin)
	assert.Equal(t, DeniedUnknownUser, d)

	d, _ = Authorize(ctx, users, "deco@decor.test", RoleAdmin, RoleDecorator)
	assert.Equal(t, Allowed, d)

	_, err = Authorize(ctx, users, "broken@decor.test", RoleAdmin)
	assert.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	h := Admin(users)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(email string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		if email != "" {
			req = req.WithContext(middleware.WithIdentity(req.Context(), auth.Identity{Email: email}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve("admin@decor.test").Code)

	rec := serve("user@decor.test")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), AdminOnly)

	assert.Equal(t, http.StatusForbidden, serve("ghost@decor.test").Code)
	assert.Equal(t, http.StatusInternalServerError, serve("broken@decor.test").Code)
	assert.Equal(t, http.StatusUnauthorized, serve("").Code)
}
