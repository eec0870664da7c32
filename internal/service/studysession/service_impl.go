package studysession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/platform/logger"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	sessionRepo    SessionRepository
	collectionRepo CollectionRepository
	historyRepo    HistoryRepository
	logger         *slog.Logger
	timeFunc       func() time.Time // Injectable for testing
}

// NewService creates a new study session Service implementation.
func NewService(
	sessionRepo SessionRepository,
	collectionRepo CollectionRepository,
	historyRepo HistoryRepository,
	logger *slog.Logger,
) Service {
	if sessionRepo == nil {
		panic("sessionRepo cannot be nil")
	}
	if collectionRepo == nil {
		panic("collectionRepo cannot be nil")
	}
	if historyRepo == nil {
		panic("historyRepo cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		sessionRepo:    sessionRepo,
		collectionRepo: collectionRepo,
		historyRepo:    historyRepo,
		logger:         logger.With(slog.String("component", "study_session_service")),
		timeFunc:       func() time.Time { return time.Now().UTC() },
	}
}

// Create implements Service.Create.
func (s *serviceImpl) Create(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	deviceType, platform string,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	if !collection.IsAccessibleBy(userID) {
		return nil, ErrAccessDenied
	}

	session, err := domain.NewStudySession(userID, collectionID, deviceType, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to build session: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Debug("study session created",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("collection_id", collectionID.String()))

	return session, nil
}

// Complete implements Service.Complete.
func (s *serviceImpl) Complete(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	override *CompletionOverride,
) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	var completed *domain.StudySession
	err := store.RunInTransaction(ctx, s.sessionRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		sessionRepo := s.sessionRepo.WithTx(tx)
		historyRepo := s.historyRepo.WithTx(tx)

		session, err := sessionRepo.GetForUpdate(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		if session.UserID != userID {
			return ErrSessionNotFound
		}

		// Counter overrides apply even to an already completed session;
		// only the end time is frozen by the first completion.
		if override != nil {
			session.CardsReviewed = override.CardsReviewed
			session.CorrectAnswers = override.CorrectAnswers
		} else if !session.IsCompleted {
			counts, err := historyRepo.CountReviewsBySession(ctx, session.ID)
			if err != nil {
				return fmt.Errorf("failed to count session reviews: %w", err)
			}
			session.CardsReviewed = counts.CardsReviewed
			session.CorrectAnswers = counts.CorrectAnswers
		}

		if !session.Complete(now) {
			log.Debug("session already completed, keeping original end time",
				slog.String("session_id", session.ID.String()))
			session.UpdatedAt = now
		}

		if err := sessionRepo.Update(ctx, session); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}

		completed = session
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	return s.buildSummary(ctx, completed)
}

// Get implements Service.Get.
func (s *serviceImpl) Get(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.StudySession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// ListByUser implements Service.ListByUser.
func (s *serviceImpl) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.StudySession, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// ListRecentByCollection implements Service.ListRecentByCollection.
func (s *serviceImpl) ListRecentByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]*domain.StudySession, error) {
	sessions, err := s.sessionRepo.ListRecentByCollection(ctx, userID, collectionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// buildSummary derives the summary view of a completed session.
func (s *serviceImpl) buildSummary(ctx context.Context, session *domain.StudySession) (*Summary, error) {
	if session.CollectionID == nil {
		return nil, domain.ErrSessionNoCollection
	}

	collection, err := s.collectionRepo.GetByID(ctx, *session.CollectionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrSessionNoCollection
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	studied := session.CardsReviewed
	correct := session.CorrectAnswers

	var successRate float64
	if studied > 0 {
		successRate = float64(correct) * 100 / float64(studied)
	}

	return &Summary{
		SessionID:        session.ID,
		CollectionID:     collection.ID,
		CollectionName:   collection.Name,
		CardsStudied:     studied,
		CorrectAnswers:   correct,
		IncorrectAnswers: studied - correct,
		SuccessRate:      successRate,
		DurationSeconds:  session.DurationSeconds(),
		StartedAt:        session.StartedAt,
		EndedAt:          session.EndedAt,
	}, nil
}
