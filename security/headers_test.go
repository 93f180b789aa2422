package security

import (
	"net/http/httptest"
	"testing"
)

func TestSetSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSecurityHeaders(rec, "http://localhost:3000")

	want := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "no-referrer",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}

	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS must not be set for http, got %q", got)
	}
}

func TestSetSecurityHeadersHSTS(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSecurityHeaders(rec, "https://library.example.com")

	if got := rec.Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("HSTS must be set for https")
	}
}
