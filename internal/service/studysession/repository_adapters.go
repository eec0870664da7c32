package studysession

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// SessionRepository defines the interface for repositories that can
// provide study session data and support transactions.
type SessionRepository interface {
	// Create saves a new session.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a session by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// GetForUpdate retrieves a session with a row-level lock.
	// Must be called within a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Update modifies an existing session.
	Update(ctx context.Context, session *domain.StudySession) error

	// ListByUser retrieves a page of the user's sessions, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.StudySession, error)

	// ListRecentByCollection retrieves the user's sessions for a
	// collection, most recent first.
	ListRecentByCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		limit int,
	) ([]*domain.StudySession, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SessionRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// CollectionRepository defines the interface for repositories that can
// provide collection data.
type CollectionRepository interface {
	// GetByID retrieves a collection by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
}

// HistoryRepository defines the interface for repositories that can count
// review history entries and support transactions.
type HistoryRepository interface {
	// CountReviewsBySession counts review entries recorded against a session.
	CountReviewsBySession(ctx context.Context, sessionID uuid.UUID) (store.SessionReviewCounts, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) HistoryRepository
}

// NewSessionRepositoryAdapter creates a new adapter that allows a
// store.StudySessionStore to be used where a SessionRepository is expected.
func NewSessionRepositoryAdapter(sessionStore store.StudySessionStore, db *sql.DB) SessionRepository {
	return &sessionRepositoryAdapter{sessionStore: sessionStore, db: db}
}

type sessionRepositoryAdapter struct {
	sessionStore store.StudySessionStore
	db           *sql.DB
}

func (a *sessionRepositoryAdapter) Create(ctx context.Context, session *domain.StudySession) error {
	return a.sessionStore.Create(ctx, session)
}

func (a *sessionRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	return a.sessionStore.GetByID(ctx, id)
}

func (a *sessionRepositoryAdapter) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	return a.sessionStore.GetForUpdate(ctx, id)
}

func (a *sessionRepositoryAdapter) Update(ctx context.Context, session *domain.StudySession) error {
	return a.sessionStore.Update(ctx, session)
}

func (a *sessionRepositoryAdapter) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.StudySession, error) {
	return a.sessionStore.ListByUser(ctx, userID, offset, limit)
}

func (a *sessionRepositoryAdapter) ListRecentByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]*domain.StudySession, error) {
	return a.sessionStore.ListRecentByCollection(ctx, userID, collectionID, limit)
}

func (a *sessionRepositoryAdapter) WithTx(tx *sql.Tx) SessionRepository {
	return &sessionRepositoryAdapter{sessionStore: a.sessionStore.WithTx(tx), db: a.db}
}

func (a *sessionRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewCollectionRepositoryAdapter creates a new adapter that allows a
// store.CollectionStore to be used where a CollectionRepository is expected.
func NewCollectionRepositoryAdapter(collectionStore store.CollectionStore) CollectionRepository {
	return &collectionRepositoryAdapter{collectionStore: collectionStore}
}

type collectionRepositoryAdapter struct {
	collectionStore store.CollectionStore
}

func (a *collectionRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	return a.collectionStore.GetByID(ctx, id)
}

// NewHistoryRepositoryAdapter creates a new adapter that allows a
// store.HistoryStore to be used where a HistoryRepository is expected.
func NewHistoryRepositoryAdapter(historyStore store.HistoryStore) HistoryRepository {
	return &historyRepositoryAdapter{historyStore: historyStore}
}

type historyRepositoryAdapter struct {
	historyStore store.HistoryStore
}

func (a *historyRepositoryAdapter) CountReviewsBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) (store.SessionReviewCounts, error) {
	return a.historyStore.CountReviewsBySession(ctx, sessionID)
}

func (a *historyRepositoryAdapter) WithTx(tx *sql.Tx) HistoryRepository {
	return &historyRepositoryAdapter{historyStore: a.historyStore.WithTx(tx)}
}
