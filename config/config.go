// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration for the service.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// BaseURL is the externally reachable base URL of the service.
	// Used to build the OAuth callback URL and security headers.
	BaseURL string

	// MongoURI is the connection string for the document store.
	MongoURI string

	// MongoDatabase is the database name. Default: "booklane".
	MongoDatabase string

	// GitHub OAuth credentials.
	GithubClientID     string
	GithubClientSecret string

	// JWTSecret signs issued bearer tokens (required).
	JWTSecret []byte

	// SessionSecret signs session cookies (required).
	SessionSecret []byte

	// TokenTTL is how long issued bearer tokens remain valid.
	// Default: 1 hour.
	TokenTTL time.Duration

	// InstrumentationEnabled turns on OpenTelemetry metrics.
	InstrumentationEnabled bool
}

const (
	defaultPort     = 3000
	defaultDatabase = "booklane"
	defaultTokenTTL = time.Hour
)

// Load reads configuration from environment variables. It returns an
// error naming the first missing required variable.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          defaultPort,
		MongoDatabase: defaultDatabase,
		TokenTTL:      defaultTokenTTL,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}

	cfg.GithubClientID = os.Getenv("GITHUB_CLIENT_ID")
	if cfg.GithubClientID == "" {
		return nil, fmt.Errorf("GITHUB_CLIENT_ID is required")
	}
	cfg.GithubClientSecret = os.Getenv("GITHUB_CLIENT_SECRET")
	if cfg.GithubClientSecret == "" {
		return nil, fmt.Errorf("GITHUB_CLIENT_SECRET is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWTSecret = []byte(jwtSecret)

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	cfg.SessionSecret = []byte(sessionSecret)

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid METRICS_ENABLED %q", v)
		}
		cfg.InstrumentationEnabled = enabled
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CallbackURL returns the OAuth redirect URL registered with the provider.
func (c *Config) CallbackURL() string {
	return c.BaseURL + "/auth/callback"
}
