package api

import (
	"errors"
	"net/http"

	"github.com/booklane/booklane/auth"
	"github.com/booklane/booklane/models"
)

// handleGithubLogin begins the OAuth handshake by redirecting the caller
// to the provider's authorization endpoint.
func (h *Handler) handleGithubLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.auth.StartLogin(), http.StatusFound)
}

// handleCallback finishes the handshake. A provider denial or an unknown
// state routes back to the unauthenticated landing page; success responds
// with the signed bearer token and establishes the caller's session.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("error") != "" {
		h.logger.Warn("Provider denied login", "error", q.Get("error"))
		h.recordLogin(r, "denied")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	result, err := h.auth.CompleteLogin(r.Context(), q.Get("state"), q.Get("code"))
	if err != nil {
		if errors.Is(err, auth.ErrStateMismatch) {
			h.recordLogin(r, "denied")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.logger.Error("Login failed", "error", err)
		h.recordLogin(r, "failed")
		h.writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.setSessionCookie(w, result.SessionID)
	h.recordLogin(r, "succeeded")
	h.writeJSON(w, http.StatusOK, map[string]string{"token": result.Token})
}

// handleLogout destroys the server-side session on every exit path.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.sessionFromRequest(r); ok {
		h.auth.Logout(sessionID)
	}
	h.clearSessionCookie(w)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// handleStatus reports the caller's authentication state without side
// effects.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	var user *models.User
	isAuthenticated := false

	if sessionID, ok := h.sessionFromRequest(r); ok {
		user, isAuthenticated = h.auth.Status(r.Context(), sessionID)
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"user":            user,
		"isAuthenticated": isAuthenticated,
	})
}

// sessionFromRequest extracts and verifies the signed session cookie.
func (h *Handler) sessionFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil {
		return "", false
	}
	return auth.VerifySessionID(cookie.Value, h.sessionSecret())
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    auth.SignSessionID(sessionID, h.sessionSecret()),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) recordLogin(r *http.Request, outcome string) {
	if h.inst != nil {
		h.inst.Metrics().RecordLogin(r.Context(), outcome)
	}
}
