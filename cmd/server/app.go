package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/config"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain/srs"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/platform/postgres"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/auth"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/learning"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/quota"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/studysession"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	collectionStore store.CollectionStore
	cardStore       store.CardStore
	progressStore   store.ProgressStore
	historyStore    store.HistoryStore
	sessionStore    store.StudySessionStore
	statisticsStore store.StatisticsStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	scheduler        srs.Service
	learningService  learning.Service
	sessionService   studysession.Service
	quotaService     *quota.Service
}

// newApplication creates a new application instance with all dependencies
// initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	app.collectionStore = postgres.NewPostgresCollectionStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.historyStore = postgres.NewPostgresHistoryStore(db, logger)
	app.sessionStore = postgres.NewPostgresStudySessionStore(db, logger)
	app.statisticsStore = postgres.NewPostgresStatisticsStore(db, logger)

	// Scheduling core
	app.scheduler = srs.NewDefaultService()

	// Learning service with its repository adapters
	app.learningService = learning.NewService(
		learning.NewCardRepositoryAdapter(app.cardStore, db),
		learning.NewCollectionRepositoryAdapter(app.collectionStore),
		learning.NewProgressRepositoryAdapter(app.progressStore),
		learning.NewHistoryRepositoryAdapter(app.historyStore),
		learning.NewSessionRepositoryAdapter(app.sessionStore),
		app.statisticsStore,
		app.scheduler,
		logger,
	)

	// Study session service
	app.sessionService = studysession.NewService(
		studysession.NewSessionRepositoryAdapter(app.sessionStore, db),
		studysession.NewCollectionRepositoryAdapter(app.collectionStore),
		studysession.NewHistoryRepositoryAdapter(app.historyStore),
		logger,
	)

	// Daily quota enforcement
	app.quotaService = quota.NewService(app.historyStore, cfg.Study.DailyReviewLimit, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
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
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
