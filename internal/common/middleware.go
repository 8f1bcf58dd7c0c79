package common

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// ClaimsContextKey is where AuthMiddleware stores the validated claims.
const ClaimsContextKey contextKey = "claims"

// AuthMiddleware enforces a bearer JWT on every request except the paths in
// publicPaths. When secret is empty auth is disabled entirely, which keeps
// local development and the test suite free of token plumbing.
func AuthMiddleware(secret []byte, publicPaths map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secret) == 0 || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			parts := strings.Fields(header)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}

			claims, err := ValidToken(secret, parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}
