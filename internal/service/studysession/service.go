// Package studysession manages study sessions: opening them, completing
// them exactly once and summarizing what was studied.
package studysession

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// Common errors returned by the study session service.
var (
	// ErrSessionNotFound indicates the session doesn't exist or belongs to
	// another user. Foreign sessions are indistinguishable from missing
	// ones so that session IDs can't be probed.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrCollectionNotFound indicates the requested collection doesn't exist
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrAccessDenied indicates the user may not study the collection
	ErrAccessDenied = errors.New("access to collection denied")
)

// CompletionOverride carries client-supplied counters for session
// completion. When present, the supplied values replace the session's
// live counters; when absent, the counters are recomputed from the
// session's review history.
type CompletionOverride struct {
	CardsReviewed  int
	CorrectAnswers int
}

// Summary describes a completed session.
type Summary struct {
	SessionID        uuid.UUID  `json:"session_id"`
	CollectionID     uuid.UUID  `json:"collection_id"`
	CollectionName   string     `json:"collection_name"`
	CardsStudied     int        `json:"cards_studied"`
	CorrectAnswers   int        `json:"correct_answers"`
	IncorrectAnswers int        `json:"incorrect_answers"`
	SuccessRate      float64    `json:"success_rate"`
	DurationSeconds  int64      `json:"duration_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
}

// Service defines the study session operations.
type Service interface {
	// Create opens a new session for the user against a collection they
	// may study. deviceType and platform are informational client labels.
	Create(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		deviceType, platform string,
	) (*domain.StudySession, error)

	// Complete finalizes a session and returns its summary. The first
	// completion stamps the end time; repeated completions keep the
	// original end time and duration. Counter overrides are applied and
	// persisted even on repeat completions.
	//
	// Returns ErrSessionNotFound for missing or foreign sessions and
	// domain.ErrSessionNoCollection when the session's collection was
	// deleted out from under it.
	Complete(
		ctx context.Context,
		userID, sessionID uuid.UUID,
		override *CompletionOverride,
	) (*Summary, error)

	// Get retrieves one of the user's sessions.
	// Returns ErrSessionNotFound for missing or foreign sessions.
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error)

	// ListByUser retrieves a page of the user's sessions, most recent
	// first.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.StudySession, error)

	// ListRecentByCollection retrieves up to limit of the user's sessions
	// for a collection, most recent first.
	ListRecentByCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		limit int,
	) ([]*domain.StudySession, error)
}
