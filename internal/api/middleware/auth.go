package middleware

import (
	"context"
	"net/http"

	"github.com/example/shoe-store/internal/auth"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// IdentityReader resolves the logged-in user of a request.
type IdentityReader interface {
	CurrentUser(r *http.Request) (*auth.Claims, bool)
}

// OptionalAuthMiddleware adds user claims to context if a valid token is present, but doesn't require it
func OptionalAuthMiddleware(identity IdentityReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := identity.CurrentUser(r); ok {
				ctx := context.WithValue(r.Context(), UserContextKey, claims)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext retrieves user claims from the request context
func GetUserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// GetUserID is a helper to get just the user ID from context
func GetUserID(ctx context.Context) string {
	claims, ok := GetUserFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.UserID
}

func GetUsername(ctx context.Context) string {
	claims, ok := GetUserFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.Username
}
