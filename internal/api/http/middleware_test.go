package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetrent-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret-at-least-32-characters!!", 60)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := AdminFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int32(7), claims.AdminID)
		w.WriteHeader(http.StatusOK)
	})
	guarded := AuthMiddleware(tokens)(next)

	t.Run("Valid token passes through with claims", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(7, "admin@fleetrent.example")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
