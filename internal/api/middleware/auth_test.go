package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonksterFX/fermentation-station/internal/config"
	"github.com/MonksterFX/fermentation-station/internal/service/auth"
)

const testSigningSecret = "middleware-test-secret-0123456789ab"

func newTestJWTService(t *testing.T, now func() time.Time) auth.JWTService {
	t.Helper()
	cfg := config.AuthConfig{
		JWTSecret:                   testSigningSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
	var (
		svc auth.JWTService
		err error
	)
	if now != nil {
		svc, err = auth.NewJWTServiceWithClock(cfg, now)
	} else {
		svc, err = auth.NewJWTService(cfg)
	}
	require.NoError(t, err)
	return svc
}

func newProtectedServer(jwtService auth.JWTService) http.Handler {
	m := NewAuthMiddleware(jwtService)
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(userID.String()))
	}))
}

func doRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t, nil)
	handler := newProtectedServer(jwtService)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	rec := doRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	handler := newProtectedServer(newTestJWTService(t, nil))

	rec := doRequest(handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header required")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	handler := newProtectedServer(newTestJWTService(t, nil))

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer too many parts"} {
		rec := doRequest(handler, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}

	rec := doRequest(handler, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t, nil)
	handler := newProtectedServer(jwtService)

	refresh, err := jwtService.GenerateRefreshToken(context.Background(), uuid.New())
	require.NoError(t, err)

	rec := doRequest(handler, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestJWTService(t, func() time.Time { return issued })
	token, err := issuer.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	// Validate well past the lifetime plus clock skew.
	validator := newTestJWTService(t, func() time.Time { return issued.Add(3 * time.Hour) })
	handler := newProtectedServer(validator)

	rec := doRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}
