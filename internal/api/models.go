package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/learning"
)

// RegisterRequest holds the data for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest holds the data for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest holds the refresh token for obtaining a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse returns the token pair issued on registration, login and
// refresh.
type TokenResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// AnswerRequest holds one answer to a card.
type AnswerRequest struct {
	IsCorrect      *bool      `json:"is_correct" validate:"required"`
	ResponseTimeMs *int       `json:"response_time_ms,omitempty" validate:"omitempty,gte=0"`
	SessionID      *uuid.UUID `json:"session_id,omitempty"`
}

// ProgressResponse describes a user's scheduling state for one card.
type ProgressResponse struct {
	CardID           uuid.UUID  `json:"card_id"`
	Status           string     `json:"learning_status"`
	EaseFactor       float64    `json:"ease_factor"`
	RepetitionCount  int        `json:"repetition_count"`
	CorrectAnswers   int        `json:"correct_answers"`
	IncorrectAnswers int        `json:"incorrect_answers"`
	NextReviewDue    *time.Time `json:"next_review_due,omitempty"`
	LastReviewedAt   *time.Time `json:"last_reviewed_at,omitempty"`
}

// StudyCardResponse pairs a card with the user's progress on it. Progress
// is null for cards the user has never answered.
type StudyCardResponse struct {
	Card     *domain.Card      `json:"card"`
	Progress *ProgressResponse `json:"progress,omitempty"`
}

// CreateSessionRequest holds the data for opening a study session.
type CreateSessionRequest struct {
	CollectionID uuid.UUID `json:"collection_id" validate:"required"`
	DeviceType   string    `json:"device_type,omitempty" validate:"max=64"`
	Platform     string    `json:"platform,omitempty" validate:"max=64"`
}

// CompleteSessionRequest optionally overrides the session counters at
// completion time. When both fields are omitted the counters are derived
// from the session's review history.
type CompleteSessionRequest struct {
	CardsReviewed  *int `json:"cards_reviewed,omitempty" validate:"omitempty,gte=0"`
	CorrectAnswers *int `json:"correct_answers,omitempty" validate:"omitempty,gte=0"`
}

// StatusStatisticsResponse reports progress record counts per learning
// status.
type StatusStatisticsResponse struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
	Known    int `json:"known"`
	Total    int `json:"total"`
}

// newProgressResponse converts a domain progress record to its API view.
func newProgressResponse(p *domain.LearningProgress) *ProgressResponse {
	if p == nil {
		return nil
	}

	resp := &ProgressResponse{
		CardID:           p.CardID,
		Status:           string(p.Status),
		EaseFactor:       p.EaseFactor,
		RepetitionCount:  p.RepetitionCount,
		CorrectAnswers:   p.CorrectAnswers,
		IncorrectAnswers: p.IncorrectAnswers,
		NextReviewDue:    p.NextReviewDue,
	}
	if !p.LastReviewedAt.IsZero() {
		last := p.LastReviewedAt
		resp.LastReviewedAt = &last
	}
	return resp
}

// newStudyCardResponses converts the learning service's queue rows to
// their API view.
func newStudyCardResponses(rows []learning.CardWithProgress) []StudyCardResponse {
	result := make([]StudyCardResponse, len(rows))
	for i, row := range rows {
		result[i] = StudyCardResponse{
			Card:     row.Card,
			Progress: newProgressResponse(row.Progress),
		}
	}
	return result
}

// newStatusStatisticsResponse converts per-status counts to their API view.
func newStatusStatisticsResponse(counts map[domain.LearningStatus]int) StatusStatisticsResponse {
	resp := StatusStatisticsResponse{
		New:      counts[domain.StatusNew],
		Learning: counts[domain.StatusLearning],
		Review:   counts[domain.StatusReview],
		Known:    counts[domain.StatusKnown],
	}
	resp.Total = resp.New + resp.Learning + resp.Review + resp.Known
	return resp
}
