package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// PostgresStatisticsStore implements the store.StatisticsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatisticsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatisticsStore creates a new PostgreSQL implementation of
// the StatisticsStore interface. If logger is nil, the default logger is
// used.
func NewPostgresStatisticsStore(db store.DBTX, logger *slog.Logger) *PostgresStatisticsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatisticsStore{
		db:     db,
		logger: logger.With(slog.String("component", "statistics_store")),
	}
}

// Ensure PostgresStatisticsStore implements store.StatisticsStore
var _ store.StatisticsStore = (*PostgresStatisticsStore)(nil)

// Touch implements store.StatisticsStore.Touch
//
// Only the refresh timestamp moves; aggregate fields keep whatever values
// the periodic recomputation job last wrote.
func (s *PostgresStatisticsStore) Touch(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO user_statistics (user_id, refreshed_at)
		VALUES ($1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET refreshed_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return mapError(err)
	}

	return nil
}
