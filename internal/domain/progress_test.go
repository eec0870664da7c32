package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLearningProgress(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	cardID := uuid.New()

	progress, err := NewLearningProgress(userID, cardID)
	require.NoError(t, err)

	assert.Equal(t, userID, progress.UserID)
	assert.Equal(t, cardID, progress.CardID)
	assert.Equal(t, StatusNew, progress.Status)
	assert.InDelta(t, DefaultEaseFactor, progress.EaseFactor, 1e-9)
	assert.Equal(t, 0, progress.RepetitionCount)
	assert.Equal(t, 0, progress.CorrectAnswers)
	assert.Equal(t, 0, progress.IncorrectAnswers)
	assert.Nil(t, progress.NextReviewDue)
}

func TestNewLearningProgressValidation(t *testing.T) {
	t.Parallel()

	_, err := NewLearningProgress(uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrEmptyProgressUserID)

	_, err = NewLearningProgress(uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrEmptyProgressCardID)
}

func TestLearningProgressValidate(t *testing.T) {
	t.Parallel()

	valid := func() *LearningProgress {
		return &LearningProgress{
			UserID:           uuid.New(),
			CardID:           uuid.New(),
			RepetitionCount:  5,
			CorrectAnswers:   3,
			IncorrectAnswers: 2,
			EaseFactor:       2.1,
			Status:           StatusLearning,
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*LearningProgress)
		wantErr error
	}{
		{
			name:    "valid record",
			mutate:  func(p *LearningProgress) {},
			wantErr: nil,
		},
		{
			name:    "negative correct counter",
			mutate:  func(p *LearningProgress) { p.CorrectAnswers = -1 },
			wantErr: ErrNegativeCounter,
		},
		{
			name:    "negative incorrect counter",
			mutate:  func(p *LearningProgress) { p.IncorrectAnswers = -1 },
			wantErr: ErrNegativeCounter,
		},
		{
			name:    "repetition count must partition into the answer counters",
			mutate:  func(p *LearningProgress) { p.RepetitionCount = 4 },
			wantErr: ErrCounterMismatch,
		},
		{
			name:    "ease factor below the floor",
			mutate:  func(p *LearningProgress) { p.EaseFactor = 1.2 },
			wantErr: ErrEaseFactorOutOfRange,
		},
		{
			name:    "ease factor above the ceiling",
			mutate:  func(p *LearningProgress) { p.EaseFactor = 2.6 },
			wantErr: ErrEaseFactorOutOfRange,
		},
		{
			name:    "unknown status",
			mutate:  func(p *LearningProgress) { p.Status = LearningStatus("SUSPENDED") },
			wantErr: ErrInvalidLearningStatus,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			progress := valid()
			tc.mutate(progress)

			err := progress.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestLearningProgressIsDue(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	progress := &LearningProgress{}
	assert.True(t, progress.IsDue(now), "Never scheduled cards are always due")

	past := now.Add(-time.Minute)
	progress.NextReviewDue = &past
	assert.True(t, progress.IsDue(now))

	exact := now
	progress.NextReviewDue = &exact
	assert.True(t, progress.IsDue(now), "A card due exactly now is due")

	future := now.Add(time.Minute)
	progress.NextReviewDue = &future
	assert.False(t, progress.IsDue(now))
}

func TestLearningProgressClone(t *testing.T) {
	t.Parallel()
	due := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	progress := &LearningProgress{
		UserID:        uuid.New(),
		CardID:        uuid.New(),
		EaseFactor:    2.5,
		Status:        StatusReview,
		NextReviewDue: &due,
	}

	clone := progress.Clone()
	require.NotSame(t, progress, clone)
	require.NotSame(t, progress.NextReviewDue, clone.NextReviewDue)

	clone.Status = StatusKnown
	*clone.NextReviewDue = due.AddDate(0, 0, 7)

	assert.Equal(t, StatusReview, progress.Status)
	assert.True(t, progress.NextReviewDue.Equal(due), "Clone must not share the due pointer")
}

func TestLearningStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, status := range []LearningStatus{StatusNew, StatusLearning, StatusReview, StatusKnown} {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, LearningStatus("").IsValid())
	assert.False(t, LearningStatus("known").IsValid(), "Status values are case sensitive")
}
