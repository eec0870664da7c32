// Package main implements the entry point for the TwainCards API server,
// which schedules users' spaced repetition flashcards and tracks their
// study sessions.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/config"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/platform/logger"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application together and serves
// until interrupted.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("daily_review_limit", cfg.Study.DailyReviewLimit))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if err := postgres.MigrateUp(db); err != nil {
		return err
	}
	appLogger.Info("database migrations applied")

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
