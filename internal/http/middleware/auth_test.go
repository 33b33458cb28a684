package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-os/pulse/internal/domain"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, email, role, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, CallerClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	t.Run("passes a valid token and exposes the caller", func(t *testing.T) {
		var gotEmail, gotRole string
		handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			gotEmail, _ = r.Context().Value(domain.CallerEmailKey).(string)
			gotRole, _ = r.Context().Value(domain.CallerRoleKey).(string)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "viewer@forge-os.com", "viewer", testSecret))
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "viewer@forge-os.com", gotEmail)
		assert.Equal(t, "viewer", gotRole)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "viewer@forge-os.com", "viewer", "other-secret"))
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, CallerClaims{
			Email: "viewer@forge-os.com",
			Role:  "viewer",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	t.Run("passes an admin", func(t *testing.T) {
		handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/ingestionSources.create", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin@forge-os.com", "admin", testSecret))
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a viewer", func(t *testing.T) {
		handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		})

		req := httptest.NewRequest(http.MethodPost, "/api/ingestionSources.create", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "viewer@forge-os.com", "viewer", testSecret))
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
