package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Identity is the decoded token identity attached to the request context.
type Identity struct {
	UserID   string
	Username string
}

type contextKey struct{}

// ContextWithIdentity returns a context carrying the given identity.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext extracts the identity set by RequireToken.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// RequireToken gates a handler on a valid bearer token. It fails closed:
// a missing, malformed, or expired token yields 401 and the request never
// reaches the handler. Verification is stateless; no store lookup is made.
func (s *Service) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			writeUnauthorized(w, "Missing or malformed Authorization header")
			return
		}

		claims, err := ParseToken(token, s.signingKey)
		if err != nil {
			writeUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := ContextWithIdentity(r.Context(), Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
