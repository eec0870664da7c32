package store

import (
	"context"

	"github.com/google/uuid"
)

// StatisticsStore maintains the per-user aggregate statistics row.
//
// The answer path only touches the row's refresh timestamp; the field
// values themselves are recomputed by a periodic job outside this
// service. Touch is best-effort: callers log failures and move on.
type StatisticsStore interface {
	// Touch upserts the user's statistics row, bumping its refresh
	// timestamp without recomputing any aggregate fields.
	Touch(ctx context.Context, userID uuid.UUID) error
}
