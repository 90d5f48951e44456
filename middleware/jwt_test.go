package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func claimsEcho() (http.Handler, **Claims) {
	var got *Claims
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
		w.WriteHeader(http.StatusOK)
	})
	return h, &got
}

// The signing key must be read when a token is signed or verified, not
// captured at package init: JWT_SECRET is usually only set once .env is
// loaded, which happens after this package's globals are initialized.
func TestJWTMiddlewareKeySetAfterInit(t *testing.T) {
	t.Setenv("JWT_SECRET", "late-bound-secret")

	// Sign independently with the env value, the way a token issued by a
	// correctly configured peer would be.
	claims := Claims{
		UserID: "u-1",
		Name:   "PAULO",
		Email:  "paulo@example.com",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("late-bound-secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	next, got := claimsEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", rr.Code, rr.Body.String())
	}
	if *got == nil || (*got).UserID != "u-1" || (*got).Role != "ADMIN" {
		t.Errorf("claims not propagated: %+v", *got)
	}
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "round-trip-secret")

	signed, err := GenerateToken("u-2", "ENCARREGADO", "MARIA", "maria@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	next, got := claimsEcho()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rr.Code)
	}
	if (*got).Email != "maria@example.com" {
		t.Errorf("email = %q", (*got).Email)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	wrongKey, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret-b"))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := claimsEcho()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			JWTMiddleware(next).ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, expected 401", rr.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	allowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		role     string
		roles    []string
		expected int
	}{
		{"admin allowed", "ADMIN", []string{"ADMIN", "OPERADOR"}, http.StatusOK},
		{"foreman denied", "ENCARREGADO", []string{"ADMIN", "OPERADOR"}, http.StatusForbidden},
		{"no claims denied", "", []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				ctx := context.WithValue(req.Context(), userClaimsKey, &Claims{Role: tt.role})
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			RequireRole(tt.roles, allowed).ServeHTTP(rr, req)
			if rr.Code != tt.expected {
				t.Errorf("status = %d, expected %d", rr.Code, tt.expected)
			}
		})
	}
}
