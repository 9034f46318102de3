package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/logger"
	"github.com/shashiranjanraj/decorhub/pkg/metrics"
	"github.com/shashiranjanraj/decorhub/pkg/response"
)

// UnauthorizedMessage is the body message of every 401 answered here.
const UnauthorizedMessage = "Unauthorized Access!"

type identityKey struct{}

// WithIdentity stores a verified identity in ctx.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx returns the identity stored by Authenticate.
func IdentityFromCtx(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// Authenticate rejects requests without a valid bearer token and exposes the
// verified identity to downstream handlers.
//
//	authed := r.Group("/", middleware.Authenticate(v))
func Authenticate(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				metrics.AuthFailures.WithLabelValues("missing").Inc()
				response.Unauthorized(w, UnauthorizedMessage)
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				metrics.AuthFailures.WithLabelValues(failureReason(err)).Inc()
				logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
				response.Unauthorized(w, UnauthorizedMessage)
				return
			}

			ctx := WithIdentity(r.Context(), id)
			ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("caller", id.Email))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "missing"
	case errors.Is(err, auth.ErrNoEmail):
		return "no_email"
	default:
		return "invalid"
	}
}
