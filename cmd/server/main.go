// Package main implements the entry point for the drinks API server,
// which serves a cafe drinks menu with permission-gated management
// endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pourover/drinks-api/internal/config"
	"github.com/pourover/drinks-api/internal/platform/logger"
	"github.com/pourover/drinks-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, applies migrations, and wires the application dependencies.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"auth_domain", cfg.Auth.Domain,
		"auth_audience", cfg.Auth.Audience)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}
