package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, wantIdentity Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		require.True(t, ok, "identity must be attached to the request context")
		assert.Equal(t, wantIdentity, id)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireTokenValid(t *testing.T) {
	svc, _, _ := setupService(t)

	token, err := GenerateToken("user-1", "octocat", testSigningKey, time.Hour)
	require.NoError(t, err)

	handler := svc.RequireToken(protectedHandler(t, Identity{UserID: "user-1", Username: "octocat"}))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireTokenCaseInsensitiveScheme(t *testing.T) {
	svc, _, _ := setupService(t)

	token, err := GenerateToken("user-1", "octocat", testSigningKey, time.Hour)
	require.NoError(t, err)

	handler := svc.RequireToken(protectedHandler(t, Identity{UserID: "user-1", Username: "octocat"}))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireTokenRejections(t *testing.T) {
	svc, _, _ := setupService(t)

	expired, err := GenerateToken("user-1", "octocat", testSigningKey, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := GenerateToken("user-1", "octocat", []byte("other-key"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer with no token", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := svc.RequireToken(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "handler must not run without a valid token")
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestIdentityFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
