// Package auth verifies bearer credentials and recovers the caller identity.
//
// Two drivers implement Verifier:
//
//	firebase  Firebase ID tokens checked with the Admin SDK (production)
//	jwt       HS256 tokens signed with JWT_SECRET (local development, tests)
package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrMissingToken means the request carried no bearer credential.
	ErrMissingToken = errors.New("auth: missing bearer token")
	// ErrInvalidToken covers bad signatures, expired and malformed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrNoEmail means the token verified but carries no email claim.
	ErrNoEmail = errors.New("auth: token has no email claim")
)

// Identity is the verified caller.
type Identity struct {
	UID   string
	Email string
}

// Verifier checks a raw bearer token against the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// BearerToken extracts the credential from an Authorization header value.
// Returns "" when the header is absent or not a bearer credential.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
