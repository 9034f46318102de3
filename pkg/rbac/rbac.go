// Package rbac guards routes by the role stored on the caller's user record.
//
// The role is read from the store on every request; there is no cache, so
// a role change applies to the very next call.
package rbac

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/decorhub/pkg/logger"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
	"github.com/shashiranjanraj/decorhub/pkg/response"
)

// Roles known to the marketplace.
const (
	RoleUser      = "user"
	RoleDecorator = "decorator"
	RoleAdmin     = "admin"
)

// Denial messages used by the default guards.
const (
	AdminOnly     = "Admin access only"
	DecoratorOnly = "Decorator access only"
)

// RoleLookup resolves the stored role of a user by email.
// found is false when no user record exists.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (role string, found bool, err error)
}

// Decision is the outcome of Authorize.
type Decision int

const (
	Allowed Decision = iota
	DeniedUnknownUser
	DeniedRole
)

// Authorize reports whether email holds one of roles.
func Authorize(ctx context.Context, lookup RoleLookup, email string, roles ...string) (Decision, error) {
	if email == "" {
		return DeniedUnknownUser, nil
	}
	role, found, err := lookup.RoleOf(ctx, email)
	if err != nil {
		return DeniedUnknownUser, err
	}
	if !found {
		return DeniedUnknownUser, nil
	}
	for _, r := range roles {
		if r == role {
			return Allowed, nil
		}
	}
	return DeniedRole, nil
}

// RequireRole returns middleware that lets through only callers whose stored
// role is one of roles. It must run after middleware.Authenticate.
func RequireRole(lookup RoleLookup, message string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.IdentityFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, middleware.UnauthorizedMessage)
				return
			}

			d, err := Authorize(r.Context(), lookup, id.Email, roles...)
			if err != nil {
				logger.WithCtx(r.Context()).Error("role lookup failed", "email", id.Email, "error", err)
				response.Upstream(w, "Failed to verify role", err)
				return
			}
			if d != Allowed {
				response.Forbidden(w, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin guards admin-only routes.
func Admin(lookup RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(lookup, AdminOnly, RoleAdmin)
}

// Decorator guards decorator-only routes.
func Decorator(lookup RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(lookup, DecoratorOnly, RoleDecorator)
}
