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

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. If logger is nil, the default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cards (id, collection_id, front_text, back_text, example, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		card.ID, card.CollectionID, card.FrontText, card.BackText, card.Example,
		card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT id, collection_id, front_text, back_text, example, created_at, updated_at
		FROM cards
		WHERE id = $1`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID, &card.CollectionID, &card.FrontText, &card.BackText, &card.Example,
		&card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, mapError(err)
	}

	return &card, nil
}

// ListByCollection implements store.CardStore.ListByCollection
//
// Insertion order is preserved through the monotonically increasing
// position column assigned on insert.
func (s *PostgresCardStore) ListByCollection(
	ctx context.Context,
	collectionID uuid.UUID,
) ([]*domain.Card, error) {
	query := `
		SELECT id, collection_id, front_text, back_text, example, created_at, updated_at
		FROM cards
		WHERE collection_id = $1
		ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		var card domain.Card
		err := rows.Scan(
			&card.ID, &card.CollectionID, &card.FrontText, &card.BackText, &card.Example,
			&card.CreatedAt, &card.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return cards, nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrCardNotFound)
}
