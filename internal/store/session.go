package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// StudySessionStore defines the interface for study session persistence.
type StudySessionStore interface {
	// Create saves a new study session.
	// Returns validation errors from the domain StudySession if data is invalid.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// GetForUpdate retrieves a session with a row-level lock using
	// SELECT ... FOR UPDATE. It must be called within a transaction and is
	// what guards completion against concurrent double-complete calls.
	// Returns ErrSessionNotFound if the session does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Update modifies an existing session.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.StudySession) error

	// ListByUser retrieves a page of the user's sessions ordered by most
	// recent start time first. offset and limit follow SQL semantics.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.StudySession, error)

	// ListRecentByCollection retrieves up to limit of the user's sessions
	// for a collection, ordered by most recent start time first.
	ListRecentByCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		limit int,
	) ([]*domain.StudySession, error)

	// WithTx returns a new StudySessionStore instance that uses the
	// provided transaction. The transaction is created and managed by the
	// caller.
	WithTx(tx *sql.Tx) StudySessionStore
}
