package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonksterFX/fermentation-station/internal/config"
	"github.com/MonksterFX/fermentation-station/internal/service/auth"
	"github.com/MonksterFX/fermentation-station/internal/store"
	"github.com/MonksterFX/fermentation-station/internal/store/memory"
)

func newUserService(t *testing.T) *UserServiceImpl {
	t.Helper()

	jwtSvc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	// Minimum bcrypt cost keeps the tests fast.
	return NewUserService(memory.NewUserStore(4), jwtSvc, auth.NewBcryptVerifier(4), discardLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	user, tokens, err := svc.Register(ctx, "brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.HashedPassword)

	got, loginTokens, err := svc.Login(ctx, "brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, loginTokens.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "brewer@example.com", "another-long-password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "brewer@example.com", "not-the-right-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "irrelevant-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, tokens, err := svc.Register(ctx, "brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, tokens, err := svc.Register(ctx, "brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}
