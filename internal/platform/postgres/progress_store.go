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

// progressColumns is the column list shared by all progress queries.
const progressColumns = `user_id, card_id, repetition_count, correct_answers, incorrect_answers,
	ease_factor, learning_status, next_review_due, last_reviewed_at, created_at, updated_at`

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, the default logger is used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProgressStore.Create
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.LearningProgress) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO learning_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		progress.UserID, progress.CardID,
		progress.RepetitionCount, progress.CorrectAnswers, progress.IncorrectAnswers,
		progress.EaseFactor, string(progress.Status),
		progress.NextReviewDue, progress.LastReviewedAt,
		progress.CreatedAt, progress.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// Get implements store.ProgressStore.Get
func (s *PostgresProgressStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	query := `SELECT ` + progressColumns + `
		FROM learning_progress
		WHERE user_id = $1 AND card_id = $2`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, cardID))
}

// GetForUpdate implements store.ProgressStore.GetForUpdate
func (s *PostgresProgressStore) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	query := `SELECT ` + progressColumns + `
		FROM learning_progress
		WHERE user_id = $1 AND card_id = $2
		FOR UPDATE`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, cardID))
}

// GetForCards implements store.ProgressStore.GetForCards
func (s *PostgresProgressStore) GetForCards(
	ctx context.Context,
	userID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID]*domain.LearningProgress, error) {
	result := make(map[uuid.UUID]*domain.LearningProgress, len(cardIDs))
	if len(cardIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + progressColumns + `
		FROM learning_progress
		WHERE user_id = $1 AND card_id = ANY($2)`

	rows, err := s.db.QueryContext(ctx, query, userID, cardIDs)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		result[progress.CardID] = progress
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return result, nil
}

// Update implements store.ProgressStore.Update
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.LearningProgress) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE learning_progress
		SET repetition_count = $3, correct_answers = $4, incorrect_answers = $5,
			ease_factor = $6, learning_status = $7, next_review_due = $8,
			last_reviewed_at = $9, updated_at = $10
		WHERE user_id = $1 AND card_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		progress.UserID, progress.CardID,
		progress.RepetitionCount, progress.CorrectAnswers, progress.IncorrectAnswers,
		progress.EaseFactor, string(progress.Status), progress.NextReviewDue,
		progress.LastReviewedAt, progress.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrProgressNotFound)
}

// ListDue implements store.ProgressStore.ListDue
func (s *PostgresProgressStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]store.ProgressWithCard, error) {
	query := dueQuery + `
		WHERE p.user_id = $1 AND p.next_review_due <= $2
		ORDER BY p.next_review_due ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, userID, now, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanProgressWithCards(rows)
}

// ListDueByCollection implements store.ProgressStore.ListDueByCollection
func (s *PostgresProgressStore) ListDueByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	now time.Time,
	limit int,
) ([]store.ProgressWithCard, error) {
	query := dueQuery + `
		WHERE p.user_id = $1 AND c.collection_id = $2 AND p.next_review_due <= $3
		ORDER BY p.next_review_due ASC
		LIMIT $4`

	rows, err := s.db.QueryContext(ctx, query, userID, collectionID, now, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanProgressWithCards(rows)
}

// ResetByCollection implements store.ProgressStore.ResetByCollection
func (s *PostgresProgressStore) ResetByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	now time.Time,
) error {
	query := `
		UPDATE learning_progress p
		SET repetition_count = 0, correct_answers = 0, incorrect_answers = 0,
			ease_factor = $4, learning_status = $5, next_review_due = $3, updated_at = $3
		FROM cards c
		WHERE p.card_id = c.id AND p.user_id = $1 AND c.collection_id = $2`

	_, err := s.db.ExecContext(ctx, query,
		userID, collectionID, now,
		domain.DefaultEaseFactor, string(domain.StatusNew),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// CountByStatus implements store.ProgressStore.CountByStatus
func (s *PostgresProgressStore) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	query := `
		SELECT learning_status, COUNT(*)
		FROM learning_progress
		WHERE user_id = $1
		GROUP BY learning_status`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanStatusCounts(rows)
}

// CountByStatusForCollection implements store.ProgressStore.CountByStatusForCollection
func (s *PostgresProgressStore) CountByStatusForCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	query := `
		SELECT p.learning_status, COUNT(*)
		FROM learning_progress p
		JOIN cards c ON c.id = p.card_id
		WHERE p.user_id = $1 AND c.collection_id = $2
		GROUP BY p.learning_status`

	rows, err := s.db.QueryContext(ctx, query, userID, collectionID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanStatusCounts(rows)
}

// dueQuery joins progress records with their cards for the review queue.
const dueQuery = `
	SELECT p.user_id, p.card_id, p.repetition_count, p.correct_answers, p.incorrect_answers,
		p.ease_factor, p.learning_status, p.next_review_due, p.last_reviewed_at,
		p.created_at, p.updated_at,
		c.id, c.collection_id, c.front_text, c.back_text, c.example, c.created_at, c.updated_at
	FROM learning_progress p
	JOIN cards c ON c.id = p.card_id`

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOne scans a single progress row, mapping sql.ErrNoRows to
// store.ErrProgressNotFound.
func (s *PostgresProgressStore) scanOne(row *sql.Row) (*domain.LearningProgress, error) {
	progress, err := scanProgress(row)
	if err != nil {
		if store.IsNotFoundError(mapError(err)) {
			return nil, store.ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// scanProgress scans the shared progress column list from a row.
func scanProgress(row rowScanner) (*domain.LearningProgress, error) {
	var progress domain.LearningProgress
	var status string

	err := row.Scan(
		&progress.UserID, &progress.CardID,
		&progress.RepetitionCount, &progress.CorrectAnswers, &progress.IncorrectAnswers,
		&progress.EaseFactor, &status, &progress.NextReviewDue, &progress.LastReviewedAt,
		&progress.CreatedAt, &progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	progress.Status = domain.LearningStatus(status)
	return &progress, nil
}

// scanProgressWithCards reads the joined due-card rows.
func scanProgressWithCards(rows *sql.Rows) ([]store.ProgressWithCard, error) {
	var result []store.ProgressWithCard

	for rows.Next() {
		var progress domain.LearningProgress
		var card domain.Card
		var status string

		err := rows.Scan(
			&progress.UserID, &progress.CardID,
			&progress.RepetitionCount, &progress.CorrectAnswers, &progress.IncorrectAnswers,
			&progress.EaseFactor, &status, &progress.NextReviewDue, &progress.LastReviewedAt,
			&progress.CreatedAt, &progress.UpdatedAt,
			&card.ID, &card.CollectionID, &card.FrontText, &card.BackText, &card.Example,
			&card.CreatedAt, &card.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		progress.Status = domain.LearningStatus(status)
		result = append(result, store.ProgressWithCard{Progress: &progress, Card: &card})
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return result, nil
}

// scanStatusCounts reads (status, count) aggregation rows.
func scanStatusCounts(rows *sql.Rows) (map[domain.LearningStatus]int, error) {
	counts := make(map[domain.LearningStatus]int)

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.LearningStatus(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return counts, nil
}
