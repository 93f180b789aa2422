// Package mock provides a configurable fake identity provider for tests.
package mock

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"github.com/booklane/booklane/providers"
)

// Compile-time check that Provider implements the providers.Provider interface.
var _ providers.Provider = (*Provider)(nil)

// Provider is a fake identity provider with configurable responses.
type Provider struct {
	// Profile is returned by FetchProfile when ProfileErr is nil.
	Profile *providers.Profile

	// ExchangeErr, when set, makes ExchangeCode fail.
	ExchangeErr error

	// ProfileErr, when set, makes FetchProfile fail.
	ProfileErr error

	// LastState records the state passed to AuthorizationURL.
	LastState string
}

// New creates a mock provider with a default profile.
func New() *Provider {
	return &Provider{
		Profile: &providers.Profile{
			ID:       "12345",
			Username: "octocat",
			Emails:   []string{"octocat@example.com"},
		},
	}
}

func (p *Provider) Name() string {
	return "mock"
}

func (p *Provider) AuthorizationURL(state string) string {
	p.LastState = state
	return "https://provider.example.com/authorize?state=" + state
}

func (p *Provider) ExchangeCode(_ context.Context, code string) (*oauth2.Token, error) {
	if p.ExchangeErr != nil {
		return nil, p.ExchangeErr
	}
	if code == "" {
		return nil, errors.New("empty code")
	}
	return &oauth2.Token{AccessToken: "provider-access-token", TokenType: "Bearer"}, nil
}

func (p *Provider) FetchProfile(_ context.Context, _ *oauth2.Token) (*providers.Profile, error) {
	if p.ProfileErr != nil {
		return nil, p.ProfileErr
	}
	return p.Profile, nil
}
