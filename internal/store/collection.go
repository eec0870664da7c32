package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// CollectionStore defines the interface for collection data persistence.
type CollectionStore interface {
	// Create saves a new collection.
	// Returns validation errors from the domain Collection if data is invalid.
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByID retrieves a collection by its unique ID.
	// Returns ErrCollectionNotFound if the collection does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)

	// Update modifies an existing collection.
	// Returns ErrCollectionNotFound if the collection does not exist.
	Update(ctx context.Context, collection *domain.Collection) error

	// Delete removes a collection by its ID. Cards and progress records
	// under it are removed by the schema's cascade rules.
	// Returns ErrCollectionNotFound if the collection does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CollectionStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CollectionStore
}
