package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/devanshg/splitmate/internal/auth"
	"github.com/devanshg/splitmate/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserKey is the context key for the authenticated user.
const UserKey contextKey = "user"

// GetUser extracts the authenticated user from the context. The zero
// value is returned when no user is attached.
func GetUser(ctx context.Context) models.AuthUser {
	user, _ := ctx.Value(UserKey).(models.AuthUser)
	return user
}

// WithUser returns a context carrying the given user. Exposed for tests.
func WithUser(ctx context.Context, user models.AuthUser) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// RequireAuth validates the Bearer token on every request and attaches the
// caller's {id, name} pair to the context. Requests without a valid token
// are rejected with 401.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				writeUnauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			ctx := WithUser(r.Context(), models.AuthUser{ID: claims.UserID, Name: claims.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": msg,
	})
}
