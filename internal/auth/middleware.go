package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// userIDKey is the request-context key under which Middleware stores the
// authenticated user's id.
const userIDKey contextKey = "user_id"

// UserID extracts the authenticated user id set by Middleware.
func UserID(r *http.Request) (string, bool) {
	uid, ok := r.Context().Value(userIDKey).(string)
	return uid, ok
}

// Middleware gates a route group on a valid bearer token. The 401 body
// distinguishes a missing token, an expired one, and everything else.
func (m *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := ""
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required. Please login."})
			return
		}

		claims, err := m.Parse(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Token expired. Please login again."})
				return
			}
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
