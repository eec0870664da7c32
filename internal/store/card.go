package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card.
	// Returns validation errors from the domain Card if data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByCollection retrieves all cards in a collection in insertion
	// order. The to-learn queue depends on this ordering.
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*domain.Card, error)

	// Delete removes a card from the store by its ID.
	// Progress records and history entries referencing the card are
	// removed by the schema's ON DELETE CASCADE constraints.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CardStore
}
