package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// HistoryAction identifies the kind of action a history entry records.
type HistoryAction string

// Possible history actions.
const (
	ActionCreate HistoryAction = "create"
	ActionView   HistoryAction = "view"
	ActionEdit   HistoryAction = "edit"
	ActionDelete HistoryAction = "delete"
	ActionReview HistoryAction = "review"
)

// IsValid reports whether the action is one of the defined actions.
func (a HistoryAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionView, ActionEdit, ActionDelete, ActionReview:
		return true
	default:
		return false
	}
}

// Common validation errors for HistoryEntry.
var (
	ErrEmptyHistoryUserID = errors.New("history entry user ID cannot be empty")
	ErrEmptyHistoryCardID = errors.New("history entry card ID cannot be empty")
)

// HistoryEntry is an append-only audit record of an action against a card
// by a user. Review entries additionally carry correctness, response time
// and the study session they belong to; they are the source of truth for
// session-scoped counts and the daily study quota.
type HistoryEntry struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	CardID         uuid.UUID     `json:"card_id"`
	Action         HistoryAction `json:"action"`
	IsCorrect      *bool         `json:"is_correct,omitempty"`
	ResponseTimeMs *int          `json:"response_time_ms,omitempty"`
	SessionID      *uuid.UUID    `json:"session_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewHistoryEntry creates a history entry for an action without review
// details (create, view, edit, delete).
func NewHistoryEntry(userID, cardID uuid.UUID, action HistoryAction) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		CardID:    cardID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// NewReviewEntry creates a history entry for an answered card, carrying
// the answer's correctness and optional response time and session.
func NewReviewEntry(
	userID, cardID uuid.UUID,
	correct bool,
	responseTimeMs *int,
	sessionID *uuid.UUID,
) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		ID:             uuid.New(),
		UserID:         userID,
		CardID:         cardID,
		Action:         ActionReview,
		IsCorrect:      &correct,
		ResponseTimeMs: responseTimeMs,
		SessionID:      sessionID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the HistoryEntry has valid data.
func (e *HistoryEntry) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyHistoryUserID
	}

	if e.CardID == uuid.Nil {
		return ErrEmptyHistoryCardID
	}

	if !e.Action.IsValid() {
		return ErrInvalidHistoryAction
	}

	return nil
}
