// Command booklane runs the library management HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/booklane/booklane/api"
	"github.com/booklane/booklane/auth"
	"github.com/booklane/booklane/config"
	"github.com/booklane/booklane/instrumentation"
	"github.com/booklane/booklane/providers/github"
	"github.com/booklane/booklane/security"
	mongostore "github.com/booklane/booklane/store/mongo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Disconnect(shutdownCtx); err != nil {
			logger.Warn("Failed to disconnect from database", "error", err)
		}
	}()

	provider, err := github.NewProvider(&github.Config{
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubClientSecret,
		RedirectURL:  cfg.CallbackURL(),
	})
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(provider, st.Users(), cfg.JWTSecret, logger)
	if err != nil {
		return err
	}
	authSvc.SetTokenTTL(cfg.TokenTTL)
	authSvc.SetAuditor(security.NewAuditor(logger, true))

	inst, err := instrumentation.New(instrumentation.Config{
		ServiceName: "booklane",
		Enabled:     cfg.InstrumentationEnabled,
	})
	if err != nil {
		return err
	}

	handler := api.NewHandler(api.Config{
		Books:           st.Books(),
		Members:         st.Members(),
		Auth:            authSvc,
		Instrumentation: inst,
		BaseURL:         cfg.BaseURL,
		SessionSecret:   cfg.SessionSecret,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "docs", cfg.BaseURL+"/api-docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
