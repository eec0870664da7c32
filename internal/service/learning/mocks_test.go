package learning

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// MockCardRepository is a mock implementation of the CardRepository
// interface. WithTx returns the mock itself so transactional code paths
// keep talking to the same expectations.
type MockCardRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListByCollection(
	ctx context.Context,
	collectionID uuid.UUID,
) ([]*domain.Card, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardRepository) WithTx(tx *sql.Tx) CardRepository {
	return m
}

func (m *MockCardRepository) DB() *sql.DB {
	return m.db
}

// MockCollectionRepository is a mock implementation of the
// CollectionRepository interface.
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionRepository) WithTx(tx *sql.Tx) CollectionRepository {
	return m
}

// MockProgressRepository is a mock implementation of the
// ProgressRepository interface.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningProgress), args.Error(1)
}

func (m *MockProgressRepository) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningProgress), args.Error(1)
}

func (m *MockProgressRepository) GetForCards(
	ctx context.Context,
	userID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID]*domain.LearningProgress, error) {
	args := m.Called(ctx, userID, cardIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*domain.LearningProgress), args.Error(1)
}

func (m *MockProgressRepository) Create(ctx context.Context, progress *domain.LearningProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) Update(ctx context.Context, progress *domain.LearningProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]store.ProgressWithCard, error) {
	args := m.Called(ctx, userID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ProgressWithCard), args.Error(1)
}

func (m *MockProgressRepository) ListDueByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	now time.Time,
	limit int,
) ([]store.ProgressWithCard, error) {
	args := m.Called(ctx, userID, collectionID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ProgressWithCard), args.Error(1)
}

func (m *MockProgressRepository) ResetByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	now time.Time,
) error {
	args := m.Called(ctx, userID, collectionID, now)
	return args.Error(0)
}

func (m *MockProgressRepository) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.LearningStatus]int), args.Error(1)
}

func (m *MockProgressRepository) CountByStatusForCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.LearningStatus]int), args.Error(1)
}

func (m *MockProgressRepository) WithTx(tx *sql.Tx) ProgressRepository {
	return m
}

// MockHistoryRepository is a mock implementation of the HistoryRepository
// interface.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) WithTx(tx *sql.Tx) HistoryRepository {
	return m
}

// MockSessionRepository is a mock implementation of the SessionRepository
// interface.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) WithTx(tx *sql.Tx) SessionRepository {
	return m
}

// MockStatisticsRepository is a mock implementation of the
// StatisticsRepository interface.
type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) Touch(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
