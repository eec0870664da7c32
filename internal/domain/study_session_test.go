package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudySession(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	collectionID := uuid.New()

	session, err := NewStudySession(userID, collectionID, "mobile", "android")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, userID, session.UserID)
	require.NotNil(t, session.CollectionID)
	assert.Equal(t, collectionID, *session.CollectionID)
	assert.Equal(t, "mobile", session.DeviceType)
	assert.Equal(t, "android", session.Platform)
	assert.Equal(t, 0, session.CardsReviewed)
	assert.Equal(t, 0, session.CorrectAnswers)
	assert.False(t, session.IsCompleted)
	assert.Nil(t, session.EndedAt)
}

func TestNewStudySessionValidation(t *testing.T) {
	t.Parallel()

	_, err := NewStudySession(uuid.Nil, uuid.New(), "", "")
	assert.ErrorIs(t, err, ErrEmptySessionUserID)
}

func TestStudySessionValidateNegativeCounters(t *testing.T) {
	t.Parallel()

	session := &StudySession{UserID: uuid.New(), CardsReviewed: -1}
	assert.ErrorIs(t, session.Validate(), ErrNegativeSessionStat)

	session = &StudySession{UserID: uuid.New(), CorrectAnswers: -1}
	assert.ErrorIs(t, session.Validate(), ErrNegativeSessionStat)
}

func TestStudySessionCompleteFirstWins(t *testing.T) {
	t.Parallel()
	session, err := NewStudySession(uuid.New(), uuid.New(), "", "")
	require.NoError(t, err)

	first := session.StartedAt.Add(5 * time.Minute)
	require.True(t, session.Complete(first))
	assert.True(t, session.IsCompleted)
	require.NotNil(t, session.EndedAt)
	assert.True(t, session.EndedAt.Equal(first))

	// A second completion leaves the end time frozen.
	second := first.Add(10 * time.Minute)
	assert.False(t, session.Complete(second))
	assert.True(t, session.EndedAt.Equal(first))
}

func TestStudySessionDurationSeconds(t *testing.T) {
	t.Parallel()
	started := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	session := &StudySession{UserID: uuid.New(), StartedAt: started}

	assert.Equal(t, int64(0), session.DurationSeconds(), "Open sessions have no duration yet")

	session.Complete(started.Add(90 * time.Second))
	assert.Equal(t, int64(90), session.DurationSeconds())
}
