// Package quota enforces the daily study limit: basic users may answer
// only a configured number of cards per UTC calendar day, while admin and
// premium users study without limit.
package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// Unlimited is the limit value reported for roles without a daily cap.
const Unlimited = -1

// ReviewCounter counts a user's review actions in a time interval.
// store.HistoryStore satisfies it.
type ReviewCounter interface {
	CountReviewsForUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
}

// Status describes where a user stands against their daily limit.
type Status struct {
	Limit     int  `json:"limit"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

// Service answers quota questions for the current calendar day. The limit
// is soft: it is checked before an answer is accepted, not enforced
// atomically, so racing requests can slightly overshoot it.
type Service struct {
	counter    ReviewCounter
	dailyLimit int
	logger     *slog.Logger
	timeFunc   func() time.Time // Injectable for testing
}

// NewService creates a quota service with the given per-day limit for
// basic users.
func NewService(counter ReviewCounter, dailyLimit int, logger *slog.Logger) *Service {
	if counter == nil {
		panic("counter cannot be nil")
	}
	if dailyLimit <= 0 {
		panic("dailyLimit must be positive")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		counter:    counter,
		dailyLimit: dailyLimit,
		logger:     logger.With(slog.String("component", "quota_service")),
		timeFunc:   func() time.Time { return time.Now().UTC() },
	}
}

// DailyLimit returns the role's per-day answer cap, or Unlimited.
func (s *Service) DailyLimit(role domain.Role) int {
	if role.HasUnlimitedStudy() {
		return Unlimited
	}
	return s.dailyLimit
}

// GetStatus reports the user's standing against today's limit.
func (s *Service) GetStatus(ctx context.Context, user *domain.User) (*Status, error) {
	limit := s.DailyLimit(user.Role)

	from, to := dayBounds(s.timeFunc())
	used, err := s.counter.CountReviewsForUserBetween(ctx, user.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	if limit == Unlimited {
		return &Status{Limit: Unlimited, Used: used, Remaining: Unlimited, Unlimited: true}, nil
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &Status{Limit: limit, Used: used, Remaining: remaining}, nil
}

// CanStudyMore reports whether the user may answer another card today.
func (s *Service) CanStudyMore(ctx context.Context, user *domain.User) (bool, error) {
	status, err := s.GetStatus(ctx, user)
	if err != nil {
		return false, err
	}

	return status.Unlimited || status.Remaining > 0, nil
}

// dayBounds returns the half-open [from, to) interval covering the UTC
// calendar day of the given instant.
func dayBounds(now time.Time) (time.Time, time.Time) {
	utc := now.UTC()
	from := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}
