// Package api wires the HTTP surface: resource routers for books and
// members, the authentication endpoints, and the documentation viewer.
package api

import (
	"log/slog"
	"net/http"

	"github.com/booklane/booklane/auth"
	"github.com/booklane/booklane/instrumentation"
	"github.com/booklane/booklane/security"
	"github.com/booklane/booklane/store"
)

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	books      store.BookStore
	members    store.MemberStore
	auth       *auth.Service
	inst       *instrumentation.Instrumentation
	baseURL    string
	sessionKey []byte
	logger     *slog.Logger
}

// Config holds the handler dependencies.
type Config struct {
	Books           store.BookStore
	Members         store.MemberStore
	Auth            *auth.Service
	Instrumentation *instrumentation.Instrumentation
	BaseURL         string
	SessionSecret   []byte
	Logger          *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		books:      cfg.Books,
		members:    cfg.Members,
		auth:       cfg.Auth,
		inst:       cfg.Instrumentation,
		baseURL:    cfg.BaseURL,
		sessionKey: cfg.SessionSecret,
		logger:     logger,
	}
}

// sessionSecret returns the key used to sign session cookies.
func (h *Handler) sessionSecret() []byte {
	return h.sessionKey
}

// Routes builds the full route table. Book mutations are gated on a valid
// bearer token; member endpoints and book reads are open, matching the
// source system's access model.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleRoot)

	// Authentication.
	mux.HandleFunc("GET /auth/github", h.handleGithubLogin)
	mux.HandleFunc("GET /auth/callback", h.handleCallback)
	mux.HandleFunc("GET /auth/logout", h.handleLogout)
	mux.HandleFunc("GET /auth/status", h.handleStatus)

	// Books. POST and PUT require authentication.
	mux.HandleFunc("GET /books", h.handleListBooks)
	mux.Handle("POST /books", h.auth.RequireToken(http.HandlerFunc(h.handleCreateBook)))
	mux.HandleFunc("GET /books/{id}", h.handleGetBook)
	mux.Handle("PUT /books/{id}", h.auth.RequireToken(http.HandlerFunc(h.handleUpdateBook)))
	mux.HandleFunc("DELETE /books/{id}", h.handleDeleteBook)

	// Members. All operations are open.
	mux.HandleFunc("GET /members", h.handleListMembers)
	mux.HandleFunc("POST /members", h.handleCreateMember)
	mux.HandleFunc("GET /members/{id}", h.handleGetMember)
	mux.HandleFunc("PUT /members/{id}", h.handleUpdateMember)
	mux.HandleFunc("DELETE /members/{id}", h.handleDeleteMember)

	// Documentation.
	mux.HandleFunc("GET /api-docs", h.handleDocs)
	mux.HandleFunc("GET /api-docs/openapi.json", h.handleOpenAPISpec)

	var handler http.Handler = mux
	if h.inst != nil {
		handler = h.inst.Middleware(handler)
	}
	handler = h.recoverPanics(handler)
	handler = security.RequestIDMiddleware(handler)
	return handler
}

// handleRoot serves the liveness/welcome route.
func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Booklane Library Management API",
	})
}
