package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api/middleware"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/config"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	service, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-long-enough-123456",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)
	return service
}

// echoUserID is a terminal handler that reports the user ID the middleware
// put in the context.
func echoUserID(t *testing.T, want uuid.UUID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserID(r)
		assert.True(t, ok)
		assert.Equal(t, want, userID)
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()
	jwtService := newTestJWTService(t)
	userID := uuid.New()

	token, err := jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	m := middleware.NewAuthMiddleware(jwtService)
	handler := m.Authenticate(echoUserID(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/api/review", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateRejectsBadRequests(t *testing.T) {
	t.Parallel()
	jwtService := newTestJWTService(t)

	refreshToken, err := jwtService.GenerateRefreshToken(context.Background(), uuid.New())
	require.NoError(t, err)

	testCases := []struct {
		name       string
		authHeader string
		wantBody   string
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantBody:   "Authorization header required",
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantBody:   "Invalid authorization format",
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantBody:   "Invalid token",
		},
		{
			name:       "refresh token on an access route",
			authHeader: "Bearer " + refreshToken,
			wantBody:   "Invalid token",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := middleware.NewAuthMiddleware(jwtService)
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("Handler must not run for unauthenticated requests")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/review", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}
