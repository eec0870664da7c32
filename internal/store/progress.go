package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// ProgressWithCard pairs a learning progress record with the card it
// tracks. It is what the review queue returns.
type ProgressWithCard struct {
	Progress *domain.LearningProgress
	Card     *domain.Card
}

// ProgressStore defines the interface for learning progress persistence.
type ProgressStore interface {
	// Create saves a new progress record.
	// Returns ErrDuplicate if a record for the (user, card) pair exists.
	Create(ctx context.Context, progress *domain.LearningProgress) error

	// Get retrieves a progress record by the combination of user ID and
	// card ID. Returns ErrProgressNotFound if no record exists.
	// NOTE: this method does NOT lock the row; use GetForUpdate when the
	// record is about to be modified.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.LearningProgress, error)

	// GetForUpdate retrieves a progress record with a row-level lock using
	// SELECT ... FOR UPDATE. It must be called within a transaction and is
	// what serializes concurrent answers for the same (user, card) pair.
	// Returns ErrProgressNotFound if no record exists.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.LearningProgress, error)

	// GetForCards retrieves the user's progress records for the given
	// cards, keyed by card ID. Cards without a record are absent from the
	// result.
	GetForCards(
		ctx context.Context,
		userID uuid.UUID,
		cardIDs []uuid.UUID,
	) (map[uuid.UUID]*domain.LearningProgress, error)

	// Update modifies an existing progress record, identified by the
	// userID and cardID fields of the given record.
	// Returns ErrProgressNotFound if no record exists.
	Update(ctx context.Context, progress *domain.LearningProgress) error

	// ListDue retrieves up to limit of the user's due progress records
	// together with their cards, ordered by ascending next review instant.
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]ProgressWithCard, error)

	// ListDueByCollection is ListDue restricted to one collection.
	ListDueByCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		now time.Time,
		limit int,
	) ([]ProgressWithCard, error)

	// ResetByCollection returns all of the user's progress records in a
	// collection to the initial state (status NEW, ease 2.5, counters at
	// zero, due at now). Records are updated in place; history is untouched.
	ResetByCollection(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) error

	// CountByStatus returns the user's progress record counts grouped by
	// learning status.
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.LearningStatus]int, error)

	// CountByStatusForCollection is CountByStatus restricted to one collection.
	CountByStatusForCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
	) (map[domain.LearningStatus]int, error)

	// WithTx returns a new ProgressStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProgressStore
}
