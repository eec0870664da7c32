package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	require.NotNil(t, service)

	impl, ok := service.(*defaultService)
	require.True(t, ok, "Expected *defaultService type")
	require.NotNil(t, impl.params)
}

func TestServiceSchedule(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	progress, err := domain.NewLearningProgress(uuid.New(), uuid.New())
	require.NoError(t, err)

	next, err := service.Schedule(progress, true, now)
	require.NoError(t, err)
	require.NotNil(t, next)

	assert.Equal(t, domain.StatusLearning, next.Status)
	assert.Equal(t, 1, next.RepetitionCount)
	assert.Equal(t, 1, next.CorrectAnswers)
	assert.Equal(t, 0, next.IncorrectAnswers)
	assert.InDelta(t, 2.5, next.EaseFactor, 1e-9)
	require.NotNil(t, next.NextReviewDue)
	assert.True(t, next.NextReviewDue.Equal(now.Add(10*time.Minute)))

	// The input record stays untouched.
	assert.Equal(t, domain.StatusNew, progress.Status)
	assert.Equal(t, 0, progress.RepetitionCount)
	assert.Nil(t, progress.NextReviewDue)
}

func TestServiceScheduleNilProgress(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	_, err := service.Schedule(nil, true, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilProgress)
}

func TestServiceScheduleInvalidStatus(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	progress, err := domain.NewLearningProgress(uuid.New(), uuid.New())
	require.NoError(t, err)
	progress.Status = domain.LearningStatus("ARCHIVED")

	_, err = service.Schedule(progress, true, time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestServiceReset(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	progress, err := domain.NewLearningProgress(uuid.New(), uuid.New())
	require.NoError(t, err)
	progress.Status = domain.StatusKnown
	progress.RepetitionCount = 12
	progress.CorrectAnswers = 9
	progress.IncorrectAnswers = 3
	progress.EaseFactor = 1.7
	due := now.AddDate(0, 0, 30)
	progress.NextReviewDue = &due

	reset, err := service.Reset(progress, now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNew, reset.Status)
	assert.Equal(t, 0, reset.RepetitionCount)
	assert.Equal(t, 0, reset.CorrectAnswers)
	assert.Equal(t, 0, reset.IncorrectAnswers)
	assert.InDelta(t, domain.DefaultEaseFactor, reset.EaseFactor, 1e-9)
	require.NotNil(t, reset.NextReviewDue)
	assert.True(t, reset.NextReviewDue.Equal(now), "Expected the card to be due immediately")
	assert.True(t, reset.UpdatedAt.Equal(now))

	// The record keeps its identity.
	assert.Equal(t, progress.UserID, reset.UserID)
	assert.Equal(t, progress.CardID, reset.CardID)

	// The input record stays untouched.
	assert.Equal(t, domain.StatusKnown, progress.Status)
	assert.Equal(t, 12, progress.RepetitionCount)
}

func TestServiceResetIdempotent(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	progress, err := domain.NewLearningProgress(uuid.New(), uuid.New())
	require.NoError(t, err)
	progress.Status = domain.StatusReview
	progress.RepetitionCount = 7
	progress.CorrectAnswers = 5
	progress.IncorrectAnswers = 2
	progress.EaseFactor = 2.1

	once, err := service.Reset(progress, now)
	require.NoError(t, err)

	twice, err := service.Reset(once, now)
	require.NoError(t, err)

	assert.Equal(t, once.Status, twice.Status)
	assert.Equal(t, once.RepetitionCount, twice.RepetitionCount)
	assert.Equal(t, once.CorrectAnswers, twice.CorrectAnswers)
	assert.Equal(t, once.IncorrectAnswers, twice.IncorrectAnswers)
	assert.InDelta(t, once.EaseFactor, twice.EaseFactor, 1e-9)
	require.NotNil(t, twice.NextReviewDue)
	assert.True(t, twice.NextReviewDue.Equal(*once.NextReviewDue))
}

func TestServiceResetNilProgress(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	_, err := service.Reset(nil, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilProgress)
}

func TestServiceLearningCycle(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	progress, err := domain.NewLearningProgress(uuid.New(), uuid.New())
	require.NoError(t, err)

	// Eight consecutive correct answers walk the card through the whole
	// cycle: NEW -> LEARNING (x2) -> REVIEW (x2) -> KNOWN.
	wantStatuses := []domain.LearningStatus{
		domain.StatusLearning,
		domain.StatusLearning,
		domain.StatusReview,
		domain.StatusReview,
		domain.StatusKnown,
		domain.StatusKnown,
	}

	current := progress
	for i, want := range wantStatuses {
		current, err = service.Schedule(current, true, now)
		require.NoError(t, err)
		assert.Equalf(t, want, current.Status, "answer %d", i+1)
		assert.NoError(t, current.Validate())
	}

	// A single wrong answer sends the known card back to review.
	current, err = service.Schedule(current, false, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, current.Status)
	assert.NoError(t, current.Validate())
}
