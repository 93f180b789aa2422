package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("GITHUB_CLIENT_ID", "client-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "client-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("SESSION_SECRET", "session-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q, want http://localhost:3000", cfg.BaseURL)
	}
	if cfg.MongoDatabase != "booklane" {
		t.Errorf("MongoDatabase = %q, want booklane", cfg.MongoDatabase)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("Addr() = %q, want :3000", cfg.Addr())
	}
	if cfg.CallbackURL() != "http://localhost:3000/auth/callback" {
		t.Errorf("CallbackURL() = %q", cfg.CallbackURL())
	}
}

func TestLoadMissingRequired(t *testing.T) {
	required := []string{"MONGO_URI", "GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET", "JWT_SECRET", "SESSION_SECRET"}

	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() must fail when %s is unset", name)
			}
			if !strings.Contains(err.Error(), name) {
				t.Errorf("error %q must name the missing variable %s", err, name)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://library.example.com")
	t.Setenv("MONGO_DATABASE", "library")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.BaseURL != "https://library.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.MongoDatabase != "library" {
		t.Errorf("MongoDatabase = %q, want library", cfg.MongoDatabase)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
	if !cfg.InstrumentationEnabled {
		t.Error("InstrumentationEnabled = false, want true")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "PORT", value: "abc"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "bad token ttl", key: "TOKEN_TTL", value: "soon"},
		{name: "negative token ttl", key: "TOKEN_TTL", value: "-1h"},
		{name: "bad metrics flag", key: "METRICS_ENABLED", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() must reject %s=%q", tt.key, tt.value)
			}
		})
	}
}
