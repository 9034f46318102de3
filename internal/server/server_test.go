package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/config"
	"github.com/shashiranjanraj/decorhub/pkg/auth"
)

func TestNewVerifierRejectsPlaceholderSecretInProduction(t *testing.T) {
	for name, values := range map[string]map[string]string{
		"default secret": {"APP_ENV": "production", "AUTH_DRIVER": "jwt"},
		"empty secret":   {"APP_ENV": "production", "AUTH_DRIVER": "jwt", "JWT_SECRET": "  "},
	} {
		t.Run(name, func(t *testing.T) {
			v, err := newVerifier(context.Background(), config.FromMap(values))
			assert.ErrorIs(t, err, ErrDefaultJWTSecret)
			assert.Nil(t, v)
		})
	}
}

func TestNewVerifierAcceptsConfiguredSecretInProduction(t *testing.T) {
	cfg := config.FromMap(map[string]string{
		"APP_ENV":     "production",
		"AUTH_DRIVER": "jwt",
		"JWT_SECRET":  "s3cr3t-from-vault",
	})
	v, err := newVerifier(context.Background(), cfg)
	require.NoError(t, err)

	token, err := auth.NewJWTVerifier("s3cr3t-from-vault").GenerateToken("root@decorhub.test", time.Hour)
	require.NoError(t, err)
	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "root@decorhub.test", id.Email)

	forged, err := auth.NewJWTVerifier("change-me-in-production").GenerateToken("root@decorhub.test", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), forged)
	assert.Error(t, err)
}

func TestNewVerifierAllowsPlaceholderSecretOutsideProduction(t *testing.T) {
	v, err := newVerifier(context.Background(), config.FromMap(map[string]string{
		"APP_ENV":     "local",
		"AUTH_DRIVER": "jwt",
	}))
	require.NoError(t, err)
	assert.NotNil(t, v)
}
