package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "booklane_session"

// defaultSessionTTL bounds how long an idle server-side session survives.
const defaultSessionTTL = 24 * time.Hour

type session struct {
	userID    string
	expiresAt time.Time
}

// SessionStore holds opaque server-side sessions in memory. Sessions exist
// only to back /auth/status and /auth/logout; API authorization is done
// with stateless bearer tokens.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      defaultSessionTTL,
	}
}

// Establish creates a session bound to a user and returns its id.
func (s *SessionStore) Establish(userID string) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return id
}

// Lookup resolves a session id to a user id. Expired sessions are removed
// on access.
func (s *SessionStore) Lookup(id string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(sess.expiresAt) {
		s.Destroy(id)
		return "", false
	}
	return sess.userID, true
}

// Destroy removes a session. Destroying an unknown id is a no-op, so the
// session is guaranteed unusable afterwards on every exit path.
func (s *SessionStore) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// SignSessionID binds a session id to the process session secret so a
// tampered cookie never reaches the store. The cookie value is
// "<id>.<base64(hmac-sha256(id))>".
func SignSessionID(id string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySessionID checks a signed cookie value and returns the embedded
// session id. The comparison is constant-time.
func VerifySessionID(value string, secret []byte) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return "", false
	}
	return id, true
}
