package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer"))
}

func TestJWTRoundTrip(t *testing.T) {
	v := NewJWTVerifier("secret")
	tok, err := v.GenerateToken(" Admin@Decor.test ", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@decor.test", id.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	tok, err := NewJWTVerifier("one").GenerateToken("a@b.co", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTVerifier("two").Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsExpired(t *testing.T) {
	v := NewJWTVerifier("secret")
	v.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := v.GenerateToken("a@b.co", time.Hour)
	require.NoError(t, err)

	v.now = time.Now
	_, err = v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTRejectsMissingAndNoEmail(t *testing.T) {
	v := NewJWTVerifier("secret")

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{Email: "a@b.co", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type fakeIDTokens struct {
	token *fbauth.Token
	err   error
}

func (f fakeIDTokens) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	v := &FirebaseVerifier{client: fakeIDTokens{token: &fbauth.Token{
		UID:    "uid-1",
		Claims: map[string]interface{}{"email": "Customer@Decor.test"},
	}}}

	id, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, Identity{UID: "uid-1", Email: "customer@decor.test"}, id)
}

func TestFirebaseVerifierFailures(t *testing.T) {
	v := &FirebaseVerifier{client: fakeIDTokens{err: errors.New("ID token has expired")}}
	_, err := v.Verify(context.Background(), "id-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	v = &FirebaseVerifier{client: fakeIDTokens{token: &fbauth.Token{UID: "anon", Claims: map[string]interface{}{}}}}
	_, err = v.Verify(context.Background(), "id-token")
	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestNewFirebaseVerifierNeedsKey(t *testing.T) {
	_, err := NewFirebaseVerifier(context.Background(), "")
	assert.Error(t, err)

	_, err = NewFirebaseVerifier(context.Background(), "%%%not-base64")
	assert.Error(t, err)
}
