package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// SessionReviewCounts carries the review totals recorded against one
// study session.
type SessionReviewCounts struct {
	CardsReviewed  int
	CorrectAnswers int
}

// HistoryStore defines the interface for the append-only action history.
// Entries are immutable once written; there are no update or delete
// operations.
type HistoryStore interface {
	// Append writes a new history entry.
	// Returns validation errors from the domain HistoryEntry if data is invalid.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// CountReviewsBySession counts review entries recorded against the
	// given session, total and correct. Used to reconstruct session
	// summaries when no explicit counters were supplied.
	CountReviewsBySession(ctx context.Context, sessionID uuid.UUID) (SessionReviewCounts, error)

	// CountReviewsForUserBetween counts the user's review entries in the
	// half-open interval [from, to). The daily quota enforcer calls this
	// with the bounds of the current calendar day.
	CountReviewsForUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)

	// WithTx returns a new HistoryStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) HistoryStore
}
