package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pourover/drinks-api/internal/config"
	"github.com/pourover/drinks-api/internal/platform/postgres"
	"github.com/pourover/drinks-api/internal/service/auth"
	"github.com/pourover/drinks-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	// Stores and services are held as interfaces so tests can swap
	// in-memory implementations.
	drinkStore store.DrinkStore
	verifier   auth.Verifier
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// The verifier fetches the tenant's signing keys at construction so a
	// misconfigured auth domain fails startup rather than the first request.
	var err error
	app.verifier, err = auth.NewVerifier(ctx, cfg.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	logger.Info("Token verifier initialized",
		"issuer", auth.Issuer(cfg.Auth.Domain),
		"audience", cfg.Auth.Audience)

	app.drinkStore = postgres.NewPostgresDrinkStore(db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
