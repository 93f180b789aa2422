// Package providers defines the interface an external OAuth identity
// provider must implement, plus shared types. Implementations live in
// sub-packages (e.g. providers/github).
package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile is the identity a provider returns after a successful handshake.
type Profile struct {
	// ID is the provider's stable identifier for the user.
	ID string

	// Username is the provider-side login name.
	Username string

	// Emails lists the user's addresses, most-preferred first. May be empty.
	Emails []string
}

// Provider abstracts the OAuth identity provider so the authentication
// service can be tested against a mock.
type Provider interface {
	// Name returns the provider name (e.g. "github").
	Name() string

	// AuthorizationURL builds the provider's authorization endpoint URL
	// with the given anti-forgery state.
	AuthorizationURL(state string) string

	// ExchangeCode exchanges an authorization code for a provider token.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchProfile retrieves the user's profile using a provider token.
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}
