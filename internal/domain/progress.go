package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LearningStatus represents where a card sits in a user's learning cycle.
type LearningStatus string

// Possible learning status values. The status machine is cyclic: a KNOWN
// card regresses to REVIEW when answered incorrectly.
const (
	StatusNew      LearningStatus = "NEW"
	StatusLearning LearningStatus = "LEARNING"
	StatusReview   LearningStatus = "REVIEW"
	StatusKnown    LearningStatus = "KNOWN"
)

// IsValid reports whether the status is one of the defined states.
func (s LearningStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReview, StatusKnown:
		return true
	default:
		return false
	}
}

// Default scheduling values for a freshly created progress record.
const (
	// DefaultEaseFactor is the initial per-card difficulty coefficient.
	DefaultEaseFactor = 2.5

	// MinEaseFactor and MaxEaseFactor bound the coefficient's domain.
	MinEaseFactor = 1.3
	MaxEaseFactor = 2.5
)

// Common validation errors for LearningProgress.
var (
	ErrEmptyProgressUserID = errors.New("learning progress user ID cannot be empty")
	ErrEmptyProgressCardID = errors.New("learning progress card ID cannot be empty")
	ErrNegativeCounter     = errors.New("answer counters must be greater than or equal to 0")
	ErrCounterMismatch     = errors.New("repetition count must equal correct plus incorrect answers")
	ErrEaseFactorOutOfRange = errors.New(
		"ease factor must be between 1.3 and 2.5",
	)
)

// LearningProgress tracks one user's scheduling state for one card. There
// is at most one record per (user, card) pair; it is created lazily on the
// first answer and removed only when the card or the user is deleted.
type LearningProgress struct {
	UserID           uuid.UUID      `json:"user_id"`
	CardID           uuid.UUID      `json:"card_id"`
	RepetitionCount  int            `json:"repetition_count"`
	CorrectAnswers   int            `json:"correct_answers"`
	IncorrectAnswers int            `json:"incorrect_answers"`
	EaseFactor       float64        `json:"ease_factor"`
	Status           LearningStatus `json:"learning_status"`
	NextReviewDue    *time.Time     `json:"next_review_due,omitempty"` // nil until the first transition
	LastReviewedAt   time.Time      `json:"last_reviewed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewLearningProgress creates a progress record in its initial state:
// status NEW, ease factor 2.5, all counters zero, no due instant yet.
func NewLearningProgress(userID, cardID uuid.UUID) (*LearningProgress, error) {
	now := time.Now().UTC()
	progress := &LearningProgress{
		UserID:     userID,
		CardID:     cardID,
		EaseFactor: DefaultEaseFactor,
		Status:     StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the LearningProgress has valid data, including the
// counter partition invariant.
func (p *LearningProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	if p.CardID == uuid.Nil {
		return ErrEmptyProgressCardID
	}

	if p.CorrectAnswers < 0 || p.IncorrectAnswers < 0 {
		return ErrNegativeCounter
	}

	if p.RepetitionCount != p.CorrectAnswers+p.IncorrectAnswers {
		return ErrCounterMismatch
	}

	if p.EaseFactor < MinEaseFactor || p.EaseFactor > MaxEaseFactor {
		return ErrEaseFactorOutOfRange
	}

	if !p.Status.IsValid() {
		return ErrInvalidLearningStatus
	}

	return nil
}

// IsDue reports whether the card should be presented at the given instant:
// it has never been scheduled, or its due instant is not after now.
func (p *LearningProgress) IsDue(now time.Time) bool {
	return p.NextReviewDue == nil || !p.NextReviewDue.After(now)
}

// Clone returns a copy of the progress record. The scheduling service
// follows an immutable update pattern and never mutates its input.
func (p *LearningProgress) Clone() *LearningProgress {
	clone := *p
	if p.NextReviewDue != nil {
		due := *p.NextReviewDue
		clone.NextReviewDue = &due
	}
	return &clone
}
