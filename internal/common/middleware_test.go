package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProtectedHandler(t *testing.T, secret []byte) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			assert.NotZero(t, claims.PersonID)
		}
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(secret, map[string]bool{"/api/v1/health": true})(next)
}

func TestAuthMiddlewareRequiresToken(t *testing.T) {
	handler := authProtectedHandler(t, []byte("secret"))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/alerts/1", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken(secret, 42, "jsmith")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	authProtectedHandler(t, secret).ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/1", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	recorder := httptest.NewRecorder()
	authProtectedHandler(t, []byte("secret")).ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewarePublicPath(t *testing.T) {
	recorder := httptest.NewRecorder()
	authProtectedHandler(t, []byte("secret")).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthMiddlewareDisabledWithoutSecret(t *testing.T) {
	recorder := httptest.NewRecorder()
	authProtectedHandler(t, nil).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/alerts/1", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
