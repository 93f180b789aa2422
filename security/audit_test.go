package security

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newCapturedAuditor(enabled bool) (*Auditor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewAuditor(logger, enabled), &buf
}

func TestAuditorLogsHashedIdentifiers(t *testing.T) {
	auditor, buf := newCapturedAuditor(true)

	auditor.LogLogin("user-12345", "github")

	out := buf.String()
	if out == "" {
		t.Fatal("enabled auditor must emit a log record")
	}
	if strings.Contains(out, "user-12345") {
		t.Error("audit log must not carry the raw user ID")
	}
	if !strings.Contains(out, "login_succeeded") {
		t.Error("audit log must carry the event type")
	}
	if !strings.Contains(out, "github") {
		t.Error("audit log must carry the provider name")
	}
}

func TestAuditorDisabled(t *testing.T) {
	auditor, buf := newCapturedAuditor(false)

	auditor.LogLogin("user-12345", "github")
	auditor.LogLoginFailure("user-12345", "state_mismatch")
	auditor.LogLogout("session-1")

	if buf.Len() != 0 {
		t.Errorf("disabled auditor must not log, got %q", buf.String())
	}
}

func TestAuditorNilReceiver(t *testing.T) {
	var auditor *Auditor
	// Must not panic.
	auditor.LogEvent(Event{Type: "login_failed"})
}

func TestHashForLogging(t *testing.T) {
	if got := hashForLogging(""); got != "" {
		t.Errorf("hashForLogging(\"\") = %q, want empty", got)
	}
	if hashForLogging("a") == hashForLogging("b") {
		t.Error("distinct values must hash differently")
	}
	if len(hashForLogging("user-1")) != 16 {
		t.Errorf("hash length = %d, want 16 hex chars", len(hashForLogging("user-1")))
	}
}
