// Package github implements the providers.Provider interface for GitHub
// OAuth Apps. The handshake requests the user:email scope so a verified
// address can be attached to the local user record.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/booklane/booklane/providers"
)

// Compile-time check that Provider implements the providers.Provider interface.
var _ providers.Provider = (*Provider)(nil)

// providerName is the name returned by Provider.Name().
const providerName = "github"

// Default GitHub API endpoints. Overridable for tests.
const (
	defaultUserEndpoint   = "https://api.github.com/user"
	defaultEmailsEndpoint = "https://api.github.com/user/emails"
)

// Provider implements the providers.Provider interface for GitHub OAuth.
type Provider struct {
	*oauth2.Config
	httpClient     *http.Client
	requestTimeout time.Duration
	userEndpoint   string
	emailsEndpoint string
}

// Config holds GitHub OAuth configuration.
type Config struct {
	// ClientID is the GitHub OAuth App client ID.
	ClientID string

	// ClientSecret is the GitHub OAuth App client secret.
	ClientSecret string

	// RedirectURL is the OAuth callback URL.
	RedirectURL string

	// Scopes are optional custom scopes (defaults to ["user:email"]).
	Scopes []string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout is the timeout for GitHub API calls (default: 30s).
	RequestTimeout time.Duration

	// APIBaseURL overrides the GitHub API base URL. Used by tests.
	APIBaseURL string
}

// NewProvider creates a new GitHub OAuth provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"user:email"}
	}
	scopesCopy := make([]string, len(scopes))
	copy(scopesCopy, scopes)

	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	userEndpoint := defaultUserEndpoint
	emailsEndpoint := defaultEmailsEndpoint
	if cfg.APIBaseURL != "" {
		userEndpoint = cfg.APIBaseURL + "/user"
		emailsEndpoint = cfg.APIBaseURL + "/user/emails"
	}

	return &Provider{
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopesCopy,
			Endpoint:     oauthgithub.Endpoint,
		},
		httpClient:     httpClient,
		requestTimeout: requestTimeout,
		userEndpoint:   userEndpoint,
		emailsEndpoint: emailsEndpoint,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return providerName
}

// AuthorizationURL generates the GitHub OAuth authorization URL carrying
// the given anti-forgery state.
func (p *Provider) AuthorizationURL(state string) string {
	return p.AuthCodeURL(state)
}

// ensureContextTimeout ensures the context has a deadline, adding one if
// needed. If the context already has a deadline, returns it with a no-op
// cancel.
func (p *Provider) ensureContextTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.requestTimeout)
}

// ExchangeCode exchanges an authorization code for a provider token.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// FetchProfile retrieves the user's GitHub profile. If the public profile
// carries no email address, the /user/emails endpoint is consulted and any
// verified addresses are appended (primary first).
func (p *Provider) FetchProfile(ctx context.Context, token *oauth2.Token) (*providers.Profile, error) {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	var ghUser struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Email string `json:"email"`
	}
	if err := p.getJSON(ctx, token.AccessToken, p.userEndpoint, &ghUser); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	profile := &providers.Profile{
		ID:       strconv.FormatInt(ghUser.ID, 10),
		Username: ghUser.Login,
	}
	if ghUser.Email != "" {
		profile.Emails = append(profile.Emails, ghUser.Email)
		return profile, nil
	}

	// Private profile email: fall back to the emails endpoint. A failure
	// here is not fatal since email is optional on the user record.
	emails, err := p.fetchVerifiedEmails(ctx, token.AccessToken)
	if err == nil {
		profile.Emails = emails
	}
	return profile, nil
}

// fetchVerifiedEmails fetches the user's verified emails, primary first.
func (p *Provider) fetchVerifiedEmails(ctx context.Context, accessToken string) ([]string, error) {
	var ghEmails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := p.getJSON(ctx, accessToken, p.emailsEndpoint, &ghEmails); err != nil {
		return nil, err
	}

	var emails []string
	for _, e := range ghEmails {
		if e.Primary && e.Verified {
			emails = append([]string{e.Email}, emails...)
		} else if e.Verified {
			emails = append(emails, e.Email)
		}
	}
	return emails, nil
}

// getJSON performs an authenticated GET against a GitHub API endpoint and
// decodes the JSON response into out.
func (p *Provider) getJSON(ctx context.Context, accessToken, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
