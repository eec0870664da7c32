package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

const sessionColumns = `id, user_id, collection_id, device_type, platform, started_at, ended_at,
	cards_reviewed, correct_answers, is_completed, created_at, updated_at`

// PostgresStudySessionStore implements the store.StudySessionStore
// interface using a PostgreSQL database as the storage backend.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of
// the StudySessionStore interface. If logger is nil, the default logger
// is used.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresStudySessionStore implements store.StudySessionStore
var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

// WithTx implements store.StudySessionStore.WithTx
func (s *PostgresStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &PostgresStudySessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.StudySessionStore.Create
func (s *PostgresStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.CollectionID,
		session.DeviceType, session.Platform,
		session.StartedAt, session.EndedAt,
		session.CardsReviewed, session.CorrectAnswers, session.IsCompleted,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetByID implements store.StudySessionStore.GetByID
func (s *PostgresStudySessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE id = $1`

	return s.scanSession(s.db.QueryRowContext(ctx, query, id))
}

// GetForUpdate implements store.StudySessionStore.GetForUpdate
func (s *PostgresStudySessionStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE id = $1
		FOR UPDATE`

	return s.scanSession(s.db.QueryRowContext(ctx, query, id))
}

// Update implements store.StudySessionStore.Update
func (s *PostgresStudySessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE study_sessions
		SET ended_at = $2, cards_reviewed = $3, correct_answers = $4,
			is_completed = $5, updated_at = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		session.ID, session.EndedAt,
		session.CardsReviewed, session.CorrectAnswers, session.IsCompleted,
		session.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrSessionNotFound)
}

// ListByUser implements store.StudySessionStore.ListByUser
func (s *PostgresStudySessionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanSessions(rows)
}

// ListRecentByCollection implements store.StudySessionStore.ListRecentByCollection
func (s *PostgresStudySessionStore) ListRecentByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1 AND collection_id = $2
		ORDER BY started_at DESC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, userID, collectionID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanSessions(rows)
}

// scanSession scans a single session row, mapping sql.ErrNoRows to
// store.ErrSessionNotFound.
func (s *PostgresStudySessionStore) scanSession(row *sql.Row) (*domain.StudySession, error) {
	var session domain.StudySession
	err := row.Scan(
		&session.ID, &session.UserID, &session.CollectionID,
		&session.DeviceType, &session.Platform,
		&session.StartedAt, &session.EndedAt,
		&session.CardsReviewed, &session.CorrectAnswers, &session.IsCompleted,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		return nil, mapError(err)
	}

	return &session, nil
}

// scanSessions reads a list of session rows.
func scanSessions(rows *sql.Rows) ([]*domain.StudySession, error) {
	var sessions []*domain.StudySession

	for rows.Next() {
		var session domain.StudySession
		err := rows.Scan(
			&session.ID, &session.UserID, &session.CollectionID,
			&session.DeviceType, &session.Platform,
			&session.StartedAt, &session.EndedAt,
			&session.CardsReviewed, &session.CorrectAnswers, &session.IsCompleted,
			&session.CreatedAt, &session.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return sessions, nil
}
