package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// PostgresHistoryStore implements the store.HistoryStore interface using
// a PostgreSQL database as the storage backend.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the
// HistoryStore interface. If logger is nil, the default logger is used.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// WithTx implements store.HistoryStore.WithTx
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// Append implements store.HistoryStore.Append
func (s *PostgresHistoryStore) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO history_entries
			(id, user_id, card_id, action, is_correct, response_time_ms, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.CardID, string(entry.Action),
		entry.IsCorrect, entry.ResponseTimeMs, entry.SessionID, entry.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// CountReviewsBySession implements store.HistoryStore.CountReviewsBySession
func (s *PostgresHistoryStore) CountReviewsBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) (store.SessionReviewCounts, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct)
		FROM history_entries
		WHERE session_id = $1 AND action = $2`

	var counts store.SessionReviewCounts
	err := s.db.QueryRowContext(ctx, query, sessionID, string(domain.ActionReview)).
		Scan(&counts.CardsReviewed, &counts.CorrectAnswers)
	if err != nil {
		return store.SessionReviewCounts{}, mapError(err)
	}

	return counts, nil
}

// CountReviewsForUserBetween implements store.HistoryStore.CountReviewsForUserBetween
func (s *PostgresHistoryStore) CountReviewsForUserBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM history_entries
		WHERE user_id = $1 AND action = $2 AND created_at >= $3 AND created_at < $4`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, string(domain.ActionReview), from, to).
		Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}

	return count, nil
}
