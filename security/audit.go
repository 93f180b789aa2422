// Package security provides request hardening helpers: audit logging,
// secure response headers, and request id propagation.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// Auditor handles security event logging with PII protection.
type Auditor struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditor creates a new security auditor.
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{logger: logger, enabled: enabled}
}

// Event represents a security audit event.
type Event struct {
	Type      string
	UserID    string
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs a security event with hashed PII.
func (a *Auditor) LogEvent(event Event) {
	if a == nil || !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	a.logger.Info("security_audit",
		"event_type", event.Type,
		"user_id_hash", hashForLogging(event.UserID),
		"details", event.Details,
		"timestamp", event.Timestamp,
	)
}

// LogLogin logs a successful login.
func (a *Auditor) LogLogin(userID, provider string) {
	a.LogEvent(Event{
		Type:   "login_succeeded",
		UserID: userID,
		Details: map[string]any{
			"provider": provider,
		},
	})
}

// LogLoginFailure logs a failed login attempt.
func (a *Auditor) LogLoginFailure(userID, reason string) {
	a.LogEvent(Event{
		Type:   "login_failed",
		UserID: userID,
		Details: map[string]any{
			"reason": reason,
		},
	})
}

// LogLogout logs a session termination.
func (a *Auditor) LogLogout(sessionID string) {
	a.LogEvent(Event{
		Type: "logout",
		Details: map[string]any{
			"session_id_hash": hashForLogging(sessionID),
		},
	})
}

// hashForLogging hashes identifiers so audit logs carry no raw PII.
func hashForLogging(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}
