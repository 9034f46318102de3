package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// idTokenVerifier is the part of *fbauth.Client the verifier needs.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier validates Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier initialises the Admin SDK from a base64-encoded
// service account JSON document.
func NewFirebaseVerifier(ctx context.Context, serviceKeyB64 string) (*FirebaseVerifier, error) {
	if serviceKeyB64 == "" {
		return nil, fmt.Errorf("auth: FIREBASE_SERVICE_KEY is not set")
	}

	creds, err := base64.StdEncoding.DecodeString(serviceKeyB64)
	if err != nil {
		return nil, fmt.Errorf("auth: decode service key: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("auth: init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: init firebase auth: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify checks signature, expiry, audience and issuer of an ID token.
func (v *FirebaseVerifier) Verify(ctx context.Context, t string) (Identity, error) {
	if t == "" {
		return Identity{}, ErrMissingToken
	}

	token, err := v.client.VerifyIDToken(ctx, t)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	email = normalizeEmail(email)
	if email == "" {
		return Identity{}, ErrNoEmail
	}
	return Identity{UID: token.UID, Email: email}, nil
}
