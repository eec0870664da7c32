package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain/srs"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/platform/logger"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cardRepo       CardRepository
	collectionRepo CollectionRepository
	progressRepo   ProgressRepository
	historyRepo    HistoryRepository
	sessionRepo    SessionRepository
	statsRepo      StatisticsRepository
	scheduler      srs.Service
	logger         *slog.Logger
	timeFunc       func() time.Time // Injectable for testing
}

// NewService creates a new learning Service implementation. statsRepo may
// be nil, in which case statistics refresh marking is skipped.
func NewService(
	cardRepo CardRepository,
	collectionRepo CollectionRepository,
	progressRepo ProgressRepository,
	historyRepo HistoryRepository,
	sessionRepo SessionRepository,
	statsRepo StatisticsRepository,
	scheduler srs.Service,
	logger *slog.Logger,
) Service {
	if cardRepo == nil {
		panic("cardRepo cannot be nil")
	}
	if collectionRepo == nil {
		panic("collectionRepo cannot be nil")
	}
	if progressRepo == nil {
		panic("progressRepo cannot be nil")
	}
	if historyRepo == nil {
		panic("historyRepo cannot be nil")
	}
	if sessionRepo == nil {
		panic("sessionRepo cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		cardRepo:       cardRepo,
		collectionRepo: collectionRepo,
		progressRepo:   progressRepo,
		historyRepo:    historyRepo,
		sessionRepo:    sessionRepo,
		statsRepo:      statsRepo,
		scheduler:      scheduler,
		logger:         logger.With(slog.String("component", "learning_service")),
		timeFunc:       func() time.Time { return time.Now().UTC() },
	}
}

// AnswerCard implements Service.AnswerCard.
func (s *serviceImpl) AnswerCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	answer Answer,
) (*domain.LearningProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if answer.ResponseTimeMs != nil && *answer.ResponseTimeMs < 0 {
		return nil, ErrInvalidAnswer
	}

	now := s.timeFunc()

	updated, err := s.processAnswer(ctx, userID, cardID, answer, now)
	if errors.Is(err, store.ErrDuplicate) {
		// Two first answers for the same card raced on the insert. The
		// losing transaction rolled back; a fresh one sees the winner's
		// committed row and takes the update path.
		updated, err = s.processAnswer(ctx, userID, cardID, answer, now)
	}
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		log.Error("failed to process answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to process answer: %w", err)
	}

	// The statistics row only marks the aggregates as stale; losing the
	// touch is acceptable, so it runs outside the transaction.
	if s.statsRepo != nil {
		if err := s.statsRepo.Touch(ctx, userID); err != nil {
			log.Warn("failed to touch user statistics",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
	}

	log.Debug("answer processed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("correct", answer.Correct),
		slog.String("status", string(updated.Status)),
		slog.Float64("ease_factor", updated.EaseFactor))

	return updated, nil
}

// processAnswer runs one answer attempt as a single transaction.
func (s *serviceImpl) processAnswer(
	ctx context.Context,
	userID, cardID uuid.UUID,
	answer Answer,
	now time.Time,
) (*domain.LearningProgress, error) {
	var updated *domain.LearningProgress
	err := store.RunInTransaction(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		cardRepo := s.cardRepo.WithTx(tx)
		collectionRepo := s.collectionRepo.WithTx(tx)
		progressRepo := s.progressRepo.WithTx(tx)
		historyRepo := s.historyRepo.WithTx(tx)
		sessionRepo := s.sessionRepo.WithTx(tx)

		card, err := s.getAccessibleCard(ctx, cardRepo, collectionRepo, userID, cardID)
		if err != nil {
			return err
		}

		// The row lock serializes concurrent answers for the same
		// (user, card) pair.
		progress, err := progressRepo.GetForUpdate(ctx, userID, card.ID)
		created := false
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("failed to get progress: %w", err)
			}
			progress, err = domain.NewLearningProgress(userID, card.ID)
			if err != nil {
				return fmt.Errorf("failed to create progress: %w", err)
			}
			created = true
		}

		next, err := s.scheduler.Schedule(progress, answer.Correct, now)
		if err != nil {
			return fmt.Errorf("failed to schedule next review: %w", err)
		}

		if created {
			err = progressRepo.Create(ctx, next)
		} else {
			err = progressRepo.Update(ctx, next)
		}
		if err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		entry, err := domain.NewReviewEntry(userID, card.ID, answer.Correct, answer.ResponseTimeMs, answer.SessionID)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := historyRepo.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}

		if answer.SessionID != nil {
			if err := s.recordAnswerInSession(ctx, sessionRepo, userID, *answer.SessionID, answer.Correct, now); err != nil {
				return err
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetCardsToLearn implements Service.GetCardsToLearn.
//
// Never-answered cards count as due, so the queue is the collection's
// cards in insertion order filtered down to those studyable now.
func (s *serviceImpl) GetCardsToLearn(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]CardWithProgress, error) {
	if err := s.checkCollectionAccess(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cardIDs := make([]uuid.UUID, len(cards))
	for i, card := range cards {
		cardIDs[i] = card.ID
	}

	progressByCard, err := s.progressRepo.GetForCards(ctx, userID, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	now := s.timeFunc()
	result := make([]CardWithProgress, 0, limit)
	for _, card := range cards {
		progress := progressByCard[card.ID]
		if progress != nil && !progress.IsDue(now) {
			continue
		}

		result = append(result, CardWithProgress{Card: card, Progress: progress})
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, nil
}

// GetCardsForReview implements Service.GetCardsForReview.
func (s *serviceImpl) GetCardsForReview(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]CardWithProgress, error) {
	due, err := s.progressRepo.ListDue(ctx, userID, s.timeFunc(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	return toCardsWithProgress(due), nil
}

// GetCardsForReviewByCollection implements Service.GetCardsForReviewByCollection.
func (s *serviceImpl) GetCardsForReviewByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]CardWithProgress, error) {
	if err := s.checkCollectionAccess(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	due, err := s.progressRepo.ListDueByCollection(ctx, userID, collectionID, s.timeFunc(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	return toCardsWithProgress(due), nil
}

// GetProgressForCard implements Service.GetProgressForCard.
func (s *serviceImpl) GetProgressForCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.getAccessibleCard(ctx, s.cardRepo, s.collectionRepo, userID, cardID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.Get(ctx, userID, card.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	// The view entry is informational; failing to record it doesn't fail
	// the read.
	entry, err := domain.NewHistoryEntry(userID, cardID, domain.ActionView)
	if err == nil {
		err = s.historyRepo.Append(ctx, entry)
	}
	if err != nil {
		log.Warn("failed to record view history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
	}

	return progress, nil
}

// ResetCardProgress implements Service.ResetCardProgress.
func (s *serviceImpl) ResetCardProgress(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	now := s.timeFunc()

	var reset *domain.LearningProgress
	err := store.RunInTransaction(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		progressRepo := s.progressRepo.WithTx(tx)

		progress, err := progressRepo.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProgressNotFound
			}
			return fmt.Errorf("failed to get progress: %w", err)
		}

		next, err := s.scheduler.Reset(progress, now)
		if err != nil {
			return fmt.Errorf("failed to reset progress: %w", err)
		}

		if err := progressRepo.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		reset = next
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to reset card progress: %w", err)
	}

	return reset, nil
}

// ResetCollectionProgress implements Service.ResetCollectionProgress.
func (s *serviceImpl) ResetCollectionProgress(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) error {
	if err := s.checkCollectionAccess(ctx, userID, collectionID); err != nil {
		return err
	}

	if err := s.progressRepo.ResetByCollection(ctx, userID, collectionID, s.timeFunc()); err != nil {
		return fmt.Errorf("failed to reset collection progress: %w", err)
	}

	return nil
}

// GetStatusStatistics implements Service.GetStatusStatistics.
func (s *serviceImpl) GetStatusStatistics(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	counts, err := s.progressRepo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count progress by status: %w", err)
	}

	return fillStatuses(counts), nil
}

// GetStatusStatisticsForCollection implements Service.GetStatusStatisticsForCollection.
func (s *serviceImpl) GetStatusStatisticsForCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	if err := s.checkCollectionAccess(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	counts, err := s.progressRepo.CountByStatusForCollection(ctx, userID, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count progress by status: %w", err)
	}

	return fillStatuses(counts), nil
}

// getAccessibleCard loads a card and verifies the user may study it.
func (s *serviceImpl) getAccessibleCard(
	ctx context.Context,
	cardRepo CardRepository,
	collectionRepo CollectionRepository,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, err := cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	collection, err := collectionRepo.GetByID(ctx, card.CollectionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	if !collection.IsAccessibleBy(userID) {
		return nil, ErrAccessDenied
	}

	return card, nil
}

// checkCollectionAccess verifies the user may study the collection.
func (s *serviceImpl) checkCollectionAccess(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) error {
	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCollectionNotFound
		}
		return fmt.Errorf("failed to get collection: %w", err)
	}

	if !collection.IsAccessibleBy(userID) {
		return ErrAccessDenied
	}

	return nil
}

// recordAnswerInSession bumps the live counters of the session the answer
// belongs to. Sessions that don't exist or belong to another user are
// reported as not found; completed sessions keep their frozen counters.
func (s *serviceImpl) recordAnswerInSession(
	ctx context.Context,
	sessionRepo SessionRepository,
	userID, sessionID uuid.UUID,
	correct bool,
	now time.Time,
) error {
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

	if session.IsCompleted {
		return nil
	}

	session.CardsReviewed++
	if correct {
		session.CorrectAnswers++
	}
	session.UpdatedAt = now

	if err := sessionRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// isServiceError reports whether err is one of the package's sentinel
// errors, which pass through to callers unwrapped.
func isServiceError(err error) bool {
	return errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrCollectionNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrInvalidAnswer)
}

// toCardsWithProgress converts the store's due-card rows to the service
// view type.
func toCardsWithProgress(rows []store.ProgressWithCard) []CardWithProgress {
	result := make([]CardWithProgress, len(rows))
	for i, row := range rows {
		result[i] = CardWithProgress{Card: row.Card, Progress: row.Progress}
	}
	return result
}

// fillStatuses ensures every learning status has an entry in the counts
// map, defaulting to zero.
func fillStatuses(counts map[domain.LearningStatus]int) map[domain.LearningStatus]int {
	result := make(map[domain.LearningStatus]int, 4)
	for _, status := range []domain.LearningStatus{
		domain.StatusNew, domain.StatusLearning, domain.StatusReview, domain.StatusKnown,
	} {
		result[status] = counts[status]
	}
	return result
}
