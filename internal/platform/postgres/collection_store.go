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

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCollectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of
// the CollectionStore interface. If logger is nil, the default logger is
// used.
func NewPostgresCollectionStore(db store.DBTX, logger *slog.Logger) *PostgresCollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// WithTx implements store.CollectionStore.WithTx
func (s *PostgresCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &PostgresCollectionStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CollectionStore.Create
func (s *PostgresCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO collections (id, owner_id, name, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		collection.ID, collection.OwnerID, collection.Name, collection.Description,
		collection.IsPublic, collection.CreatedAt, collection.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetByID implements store.CollectionStore.GetByID
func (s *PostgresCollectionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	query := `
		SELECT id, owner_id, name, description, is_public, created_at, updated_at
		FROM collections
		WHERE id = $1`

	var collection domain.Collection
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&collection.ID, &collection.OwnerID, &collection.Name, &collection.Description,
		&collection.IsPublic, &collection.CreatedAt, &collection.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCollectionNotFound
		}
		return nil, mapError(err)
	}

	return &collection, nil
}

// Update implements store.CollectionStore.Update
func (s *PostgresCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE collections
		SET name = $2, description = $3, is_public = $4, updated_at = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		collection.ID, collection.Name, collection.Description,
		collection.IsPublic, collection.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrCollectionNotFound)
}

// Delete implements store.CollectionStore.Delete
func (s *PostgresCollectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrCollectionNotFound)
}
