package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
)

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserID(r)
		if !ok {
			t.Error("middleware passed request without a user id in context")
		}
		w.Write([]byte(uid))
	})
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

func TestMiddlewareMissingToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	rec := httptest.NewRecorder()

	m.Middleware(protectedEcho(t)).ServeHTTP(rec, httptest.NewRequest("GET", "/api/progress", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := errorBody(t, rec); got != "Authentication required. Please login." {
		t.Errorf("error = %q, want missing-token message", got)
	}
}

func TestMiddlewareExpiredToken(t *testing.T) {
	// Negative TTL issues an already-expired token.
	expired := NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	m := NewTokenManager("test-secret", time.Hour)
	req := httptest.NewRequest("GET", "/api/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Middleware(protectedEcho(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := errorBody(t, rec); !strings.Contains(got, "expired") {
		t.Errorf("error = %q, want expiry-specific message", got)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	req := httptest.NewRequest("GET", "/api/progress", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()

	m.Middleware(protectedEcho(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := errorBody(t, rec); got != "Invalid token" {
		t.Errorf("error = %q, want invalid-token message", got)
	}
}

func TestMiddlewarePassesValidToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Middleware(protectedEcho(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "user-123" {
		t.Errorf("user id = %q, want user-123", rec.Body.String())
	}
}
