package http

import (
	"context"
	"net/http"
	"strings"

	"fleetrent-backend/internal/security"
)

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

// AuthMiddleware guards the back-office routes with bearer tokens issued by
// the admin login endpoint.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired token"})
				return
			}
			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the claims set by AuthMiddleware, if any.
func AdminFromContext(ctx context.Context) (*security.AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(*security.AdminClaims)
	return claims, ok
}
