// Package auth implements the authentication service: it bridges the
// external OAuth identity provider to this system's user records and
// bearer tokens, and owns the server-side sessions used by the login
// endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/providers"
	"github.com/booklane/booklane/security"
	"github.com/booklane/booklane/store"
)

var (
	// ErrStateMismatch indicates the callback state was unknown, expired,
	// or already used. The login attempt is abandoned; no token is issued.
	ErrStateMismatch = errors.New("state parameter mismatch")

	// ErrIdentityPersistence indicates the user record could not be
	// written during login. Propagated to the caller as a login failure.
	ErrIdentityPersistence = errors.New("failed to persist user identity")
)

// Service orchestrates the OAuth login flow: handshake state, user upsert,
// session establishment, and token issuance.
type Service struct {
	provider   providers.Provider
	users      store.UserStore
	sessions   *SessionStore
	flows      *FlowStore
	auditor    *security.Auditor
	signingKey []byte
	tokenTTL   time.Duration
	logger     *slog.Logger
}

// NewService creates an authentication service. The signing key is
// process-wide configuration; callers must have validated its presence at
// startup.
func NewService(provider providers.Provider, users store.UserStore, signingKey []byte, logger *slog.Logger) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if len(signingKey) == 0 {
		return nil, fmt.Errorf("signing key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		provider:   provider,
		users:      users,
		sessions:   NewSessionStore(),
		flows:      NewFlowStore(),
		signingKey: signingKey,
		tokenTTL:   DefaultTokenTTL,
		logger:     logger,
	}, nil
}

// SetAuditor attaches a security auditor for login events.
func (s *Service) SetAuditor(a *security.Auditor) {
	s.auditor = a
}

// SetTokenTTL overrides the default bearer token lifetime.
func (s *Service) SetTokenTTL(ttl time.Duration) {
	if ttl > 0 {
		s.tokenTTL = ttl
	}
}

// SigningKey exposes the token signing key for the middleware.
func (s *Service) SigningKey() []byte {
	return s.signingKey
}

// StartLogin begins a login attempt and returns the provider authorization
// URL the caller should be redirected to.
func (s *Service) StartLogin() string {
	state := s.flows.Begin()
	return s.provider.AuthorizationURL(state)
}

// LoginResult is what a completed login hands back to the HTTP layer.
type LoginResult struct {
	User      *models.User
	Token     string
	SessionID string
}

// CompleteLogin finishes a login attempt: it validates the callback state,
// exchanges the authorization code, fetches the provider profile, upserts
// the user record, establishes a server-side session, and issues a signed
// bearer token.
func (s *Service) CompleteLogin(ctx context.Context, state, code string) (*LoginResult, error) {
	if !s.flows.Consume(state) {
		if s.auditor != nil {
			s.auditor.LogLoginFailure("", "state_mismatch")
		}
		return nil, ErrStateMismatch
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		if s.auditor != nil {
			s.auditor.LogLoginFailure("", "code_exchange_failed")
		}
		return nil, fmt.Errorf("failed to exchange code with provider: %w", err)
	}

	profile, err := s.provider.FetchProfile(ctx, token)
	if err != nil {
		if s.auditor != nil {
			s.auditor.LogLoginFailure("", "profile_fetch_failed")
		}
		return nil, fmt.Errorf("failed to fetch provider profile: %w", err)
	}

	user, err := s.upsertUser(ctx, profile)
	if err != nil {
		if s.auditor != nil {
			s.auditor.LogLoginFailure(profile.ID, "identity_persistence_failed")
		}
		return nil, err
	}

	bearer, err := GenerateToken(user.ID.Hex(), user.Username, s.signingKey, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	sessionID := s.sessions.Establish(user.ID.Hex())

	if s.auditor != nil {
		s.auditor.LogLogin(user.ID.Hex(), s.provider.Name())
	}
	s.logger.Info("Login completed", "user_id", user.ID.Hex(), "username", user.Username)

	return &LoginResult{User: user, Token: bearer, SessionID: sessionID}, nil
}

// upsertUser finds a user by the provider identity, creating one on first
// login. A duplicate-key error during create means a concurrent login won
// the race; the record is simply re-fetched.
func (s *Service) upsertUser(ctx context.Context, profile *providers.Profile) (*models.User, error) {
	user, err := s.users.FindByGithubID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrIdentityPersistence, err)
	}

	candidate := &models.User{
		GithubID: profile.ID,
		Username: profile.Username,
	}
	if len(profile.Emails) > 0 {
		candidate.Email = profile.Emails[0]
	}

	created, err := s.users.Create(ctx, candidate)
	if err == nil {
		s.logger.Info("Created user on first login", "github_id", profile.ID, "username", profile.Username)
		return created, nil
	}
	if errors.Is(err, store.ErrDuplicateKey) {
		return s.users.FindByGithubID(ctx, profile.ID)
	}
	return nil, fmt.Errorf("%w: %w", ErrIdentityPersistence, err)
}

// EstablishSession creates a session for a user and returns its id.
func (s *Service) EstablishSession(userID string) string {
	return s.sessions.Establish(userID)
}

// Logout terminates a server-side session. The session is unusable
// afterwards regardless of whether it existed.
func (s *Service) Logout(sessionID string) {
	s.sessions.Destroy(sessionID)
	if s.auditor != nil {
		s.auditor.LogLogout(sessionID)
	}
}

// Status reports whether a session is authenticated and the user bound to
// it. It has no side effects beyond dropping expired sessions.
func (s *Service) Status(ctx context.Context, sessionID string) (*models.User, bool) {
	userID, ok := s.sessions.Lookup(sessionID)
	if !ok {
		return nil, false
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, false
	}
	return user, true
}
