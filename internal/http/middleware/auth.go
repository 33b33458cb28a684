package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forge-os/pulse/internal/domain"
)

// CallerClaims is the identity payload minted by the external auth system.
// This service only verifies and reads it; login and role assignment
// happen elsewhere.
type CallerClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies bearer tokens with the shared HMAC secret and
// exposes the caller's email and role to handlers via context.
type AuthMiddleware struct {
	secretKey []byte
}

// NewAuthMiddleware creates an auth middleware around the shared secret.
func NewAuthMiddleware(secretKey string) *AuthMiddleware {
	return &AuthMiddleware{secretKey: []byte(secretKey)}
}

// RequireAuth wraps a handler, rejecting requests without a valid token.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.verify(r)
		if err != nil {
			writeAuthError(w, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), domain.CallerEmailKey, claims.Email)
		ctx = context.WithValue(ctx, domain.CallerRoleKey, claims.Role)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin wraps a handler, additionally requiring the admin role.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(domain.CallerRoleKey).(string)
		if role != string(domain.RoleAdmin) {
			writeAuthError(w, "Unauthorized")
			return
		}
		next(w, r)
	})
}

func (m *AuthMiddleware) verify(r *http.Request) (*CallerClaims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, fmt.Errorf("missing bearer token")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &CallerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
