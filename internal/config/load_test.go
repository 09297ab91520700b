package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A secret of exactly 32 characters, the configured minimum.
const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FERMENT_AUTH_JWT_SECRET", testSecret)
	t.Setenv("FERMENT_SERVER_PORT", "9090")
	t.Setenv("FERMENT_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FERMENT_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "memory", cfg.Blob.Driver)
	assert.True(t, cfg.Dispatch.Enabled)
	assert.True(t, cfg.Database.Seed)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("FERMENT_AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("FERMENT_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("FERMENT_AUTH_JWT_SECRET", testSecret)
	t.Setenv("FERMENT_SERVER_LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
}
