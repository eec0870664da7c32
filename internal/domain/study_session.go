package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudySession.
var (
	ErrEmptySessionUserID  = errors.New("study session user ID cannot be empty")
	ErrSessionNoCollection = errors.New("study session has no associated collection")
	ErrNegativeSessionStat = errors.New("study session counters must be greater than or equal to 0")
)

// StudySession groups a burst of answer events for summary reporting. It
// is created in the ACTIVE state with zero counters, mutated by each
// answer tied to it, and finalized exactly once: the first completion
// stamps the end time and freezes the duration.
type StudySession struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	CollectionID   *uuid.UUID `json:"collection_id,omitempty"`
	DeviceType     string     `json:"device_type,omitempty"`
	Platform       string     `json:"platform,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	CardsReviewed  int        `json:"cards_reviewed"`
	CorrectAnswers int        `json:"correct_answers"`
	IsCompleted    bool       `json:"is_completed"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewStudySession opens a session for the given user bound to one
// collection, with counters at zero and the start time set to now.
func NewStudySession(userID, collectionID uuid.UUID, deviceType, platform string) (*StudySession, error) {
	now := time.Now().UTC()
	session := &StudySession{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: &collectionID,
		DeviceType:   deviceType,
		Platform:     platform,
		StartedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if s.CardsReviewed < 0 || s.CorrectAnswers < 0 {
		return ErrNegativeSessionStat
	}

	return nil
}

// Complete finalizes the session at the given instant. It returns false
// without touching the end time when the session was already completed:
// the first completion wins.
func (s *StudySession) Complete(now time.Time) bool {
	if s.IsCompleted {
		return false
	}

	ended := now
	s.EndedAt = &ended
	s.IsCompleted = true
	s.UpdatedAt = now
	return true
}

// DurationSeconds returns the elapsed seconds between start and end, or 0
// when the session has not been completed yet.
func (s *StudySession) DurationSeconds() int64 {
	if s.EndedAt == nil {
		return 0
	}
	return int64(s.EndedAt.Sub(s.StartedAt) / time.Second)
}
