package learning

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// CardRepository defines the interface for repositories that can provide
// card data and support transactions.
type CardRepository interface {
	// GetByID retrieves a card by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByCollection retrieves all cards in a collection in insertion order.
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*domain.Card, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// CollectionRepository defines the interface for repositories that can
// provide collection data and support transactions.
type CollectionRepository interface {
	// GetByID retrieves a collection by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CollectionRepository
}

// ProgressRepository defines the interface for repositories that can
// provide learning progress data and support transactions.
type ProgressRepository interface {
	// Get retrieves a progress record for the (user, card) pair.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.LearningProgress, error)

	// GetForUpdate retrieves a progress record with a row-level lock.
	// Must be called within a transaction.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.LearningProgress, error)

	// GetForCards retrieves the user's progress records for the given
	// cards, keyed by card ID.
	GetForCards(
		ctx context.Context,
		userID uuid.UUID,
		cardIDs []uuid.UUID,
	) (map[uuid.UUID]*domain.LearningProgress, error)

	// Create saves a new progress record.
	Create(ctx context.Context, progress *domain.LearningProgress) error

	// Update modifies an existing progress record.
	Update(ctx context.Context, progress *domain.LearningProgress) error

	// ListDue retrieves the user's due progress records with their cards,
	// most overdue first.
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]store.ProgressWithCard, error)

	// ListDueByCollection is ListDue restricted to one collection.
	ListDueByCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		now time.Time,
		limit int,
	) ([]store.ProgressWithCard, error)

	// ResetByCollection returns the user's progress records in a collection
	// to the initial state.
	ResetByCollection(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) error

	// CountByStatus returns progress record counts grouped by status.
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.LearningStatus]int, error)

	// CountByStatusForCollection is CountByStatus restricted to one collection.
	CountByStatusForCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
	) (map[domain.LearningStatus]int, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProgressRepository
}

// HistoryRepository defines the interface for repositories that record
// card action history and support transactions.
type HistoryRepository interface {
	// Append writes a new history entry.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) HistoryRepository
}

// SessionRepository defines the interface for repositories that can
// provide study session data and support transactions.
type SessionRepository interface {
	// GetForUpdate retrieves a session with a row-level lock.
	// Must be called within a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Update modifies an existing session.
	Update(ctx context.Context, session *domain.StudySession) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SessionRepository
}

// StatisticsRepository marks the user's aggregate statistics as stale.
type StatisticsRepository interface {
	// Touch bumps the refresh timestamp of the user's statistics row.
	Touch(ctx context.Context, userID uuid.UUID) error
}

// NewCardRepositoryAdapter creates a new adapter that allows a
// store.CardStore to be used where a CardRepository is expected.
func NewCardRepositoryAdapter(cardStore store.CardStore, db *sql.DB) CardRepository {
	return &cardRepositoryAdapter{cardStore: cardStore, db: db}
}

type cardRepositoryAdapter struct {
	cardStore store.CardStore
	db        *sql.DB
}

func (a *cardRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return a.cardStore.GetByID(ctx, id)
}

func (a *cardRepositoryAdapter) ListByCollection(
	ctx context.Context,
	collectionID uuid.UUID,
) ([]*domain.Card, error) {
	return a.cardStore.ListByCollection(ctx, collectionID)
}

func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{cardStore: a.cardStore.WithTx(tx), db: a.db}
}

func (a *cardRepositoryAdapter) DB() *sql.DB {
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

func (a *collectionRepositoryAdapter) WithTx(tx *sql.Tx) CollectionRepository {
	return &collectionRepositoryAdapter{collectionStore: a.collectionStore.WithTx(tx)}
}

// NewProgressRepositoryAdapter creates a new adapter that allows a
// store.ProgressStore to be used where a ProgressRepository is expected.
func NewProgressRepositoryAdapter(progressStore store.ProgressStore) ProgressRepository {
	return &progressRepositoryAdapter{progressStore: progressStore}
}

type progressRepositoryAdapter struct {
	progressStore store.ProgressStore
}

func (a *progressRepositoryAdapter) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	return a.progressStore.Get(ctx, userID, cardID)
}

func (a *progressRepositoryAdapter) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	return a.progressStore.GetForUpdate(ctx, userID, cardID)
}

func (a *progressRepositoryAdapter) GetForCards(
	ctx context.Context,
	userID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID]*domain.LearningProgress, error) {
	return a.progressStore.GetForCards(ctx, userID, cardIDs)
}

func (a *progressRepositoryAdapter) Create(ctx context.Context, progress *domain.LearningProgress) error {
	return a.progressStore.Create(ctx, progress)
}

func (a *progressRepositoryAdapter) Update(ctx context.Context, progress *domain.LearningProgress) error {
	return a.progressStore.Update(ctx, progress)
}

func (a *progressRepositoryAdapter) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]store.ProgressWithCard, error) {
	return a.progressStore.ListDue(ctx, userID, now, limit)
}

func (a *progressRepositoryAdapter) ListDueByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	now time.Time,
	limit int,
) ([]store.ProgressWithCard, error) {
	return a.progressStore.ListDueByCollection(ctx, userID, collectionID, now, limit)
}

func (a *progressRepositoryAdapter) ResetByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	now time.Time,
) error {
	return a.progressStore.ResetByCollection(ctx, userID, collectionID, now)
}

func (a *progressRepositoryAdapter) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	return a.progressStore.CountByStatus(ctx, userID)
}

func (a *progressRepositoryAdapter) CountByStatusForCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	return a.progressStore.CountByStatusForCollection(ctx, userID, collectionID)
}

func (a *progressRepositoryAdapter) WithTx(tx *sql.Tx) ProgressRepository {
	return &progressRepositoryAdapter{progressStore: a.progressStore.WithTx(tx)}
}

// NewHistoryRepositoryAdapter creates a new adapter that allows a
// store.HistoryStore to be used where a HistoryRepository is expected.
func NewHistoryRepositoryAdapter(historyStore store.HistoryStore) HistoryRepository {
	return &historyRepositoryAdapter{historyStore: historyStore}
}

type historyRepositoryAdapter struct {
	historyStore store.HistoryStore
}

func (a *historyRepositoryAdapter) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	return a.historyStore.Append(ctx, entry)
}

func (a *historyRepositoryAdapter) WithTx(tx *sql.Tx) HistoryRepository {
	return &historyRepositoryAdapter{historyStore: a.historyStore.WithTx(tx)}
}

// NewSessionRepositoryAdapter creates a new adapter that allows a
// store.StudySessionStore to be used where a SessionRepository is expected.
func NewSessionRepositoryAdapter(sessionStore store.StudySessionStore) SessionRepository {
	return &sessionRepositoryAdapter{sessionStore: sessionStore}
}

type sessionRepositoryAdapter struct {
	sessionStore store.StudySessionStore
}

func (a *sessionRepositoryAdapter) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	return a.sessionStore.GetForUpdate(ctx, id)
}

func (a *sessionRepositoryAdapter) Update(ctx context.Context, session *domain.StudySession) error {
	return a.sessionStore.Update(ctx, session)
}

func (a *sessionRepositoryAdapter) WithTx(tx *sql.Tx) SessionRepository {
	return &sessionRepositoryAdapter{sessionStore: a.sessionStore.WithTx(tx)}
}
