package auth

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// stateTTL bounds how long a login attempt may sit between the redirect to
// the provider and the callback.
const stateTTL = 10 * time.Minute

// FlowStore tracks the anti-forgery state of in-flight login attempts.
// Each state value is single-use: Consume removes it whether or not it was
// valid.
type FlowStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

// NewFlowStore creates an empty flow store.
func NewFlowStore() *FlowStore {
	return &FlowStore{states: make(map[string]time.Time)}
}

// Begin generates a new state value and records it.
func (f *FlowStore) Begin() string {
	state := oauth2.GenerateVerifier()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.prune()
	f.states[state] = time.Now().Add(stateTTL)
	return state
}

// Consume validates and removes a state value. Returns false for unknown
// or expired states.
func (f *FlowStore) Consume(state string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	expiry, ok := f.states[state]
	if !ok {
		return false
	}
	delete(f.states, state)
	return time.Now().Before(expiry)
}

// prune drops expired states. Caller must hold the lock.
func (f *FlowStore) prune() {
	now := time.Now()
	for state, expiry := range f.states {
		if now.After(expiry) {
			delete(f.states, state)
		}
	}
}
