// Package learning implements the study workflow: answering cards,
// building the to-learn and review queues, resetting progress and
// reporting per-status counts.
package learning

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// Common errors returned by the learning service.
var (
	// ErrCardNotFound indicates the requested card doesn't exist
	ErrCardNotFound = errors.New("card not found")

	// ErrCollectionNotFound indicates the requested collection doesn't exist
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrProgressNotFound indicates no progress record exists for the card
	ErrProgressNotFound = errors.New("learning progress not found")

	// ErrSessionNotFound indicates the referenced study session doesn't
	// exist or belongs to another user
	ErrSessionNotFound = errors.New("study session not found")

	// ErrAccessDenied indicates the user may not study the card's
	// collection: it is private and owned by someone else
	ErrAccessDenied = errors.New("access to collection denied")

	// ErrInvalidAnswer indicates the submitted answer failed validation
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Answer carries one answer to a card: whether the user got it right,
// and optionally how long they took and which study session the answer
// belongs to.
type Answer struct {
	Correct        bool
	ResponseTimeMs *int
	SessionID      *uuid.UUID
}

// CardWithProgress pairs a card with the user's progress on it. Cards the
// user has never answered carry a nil Progress.
type CardWithProgress struct {
	Card     *domain.Card
	Progress *domain.LearningProgress
}

// Service defines the study workflow operations.
type Service interface {
	// AnswerCard processes one answer: it loads (or creates) the user's
	// progress record for the card, advances it through the scheduling
	// algorithm and appends a review history entry, all atomically.
	// Returns the updated progress record.
	//
	// Returns ErrCardNotFound if the card doesn't exist, ErrAccessDenied
	// if the user may not study the card's collection, ErrSessionNotFound
	// if the answer references a session that doesn't exist or isn't
	// theirs, and ErrInvalidAnswer for malformed answers.
	AnswerCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		answer Answer,
	) (*domain.LearningProgress, error)

	// GetCardsToLearn returns up to limit cards from the collection that
	// the user should study now: cards they have never answered plus cards
	// whose next review is due, in the collection's insertion order.
	GetCardsToLearn(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		limit int,
	) ([]CardWithProgress, error)

	// GetCardsForReview returns up to limit of the user's due cards across
	// all collections, most overdue first.
	GetCardsForReview(ctx context.Context, userID uuid.UUID, limit int) ([]CardWithProgress, error)

	// GetCardsForReviewByCollection is GetCardsForReview restricted to one
	// collection.
	GetCardsForReviewByCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		limit int,
	) ([]CardWithProgress, error)

	// GetProgressForCard returns the user's progress record for a card and
	// records a view action in the history.
	// Returns ErrProgressNotFound if the user has never answered the card.
	GetProgressForCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.LearningProgress, error)

	// ResetCardProgress returns the user's progress on one card to the
	// initial state. History entries are kept.
	// Returns ErrProgressNotFound if no progress record exists.
	ResetCardProgress(ctx context.Context, userID, cardID uuid.UUID) (*domain.LearningProgress, error)

	// ResetCollectionProgress returns all of the user's progress records in
	// a collection to the initial state. History entries are kept.
	ResetCollectionProgress(ctx context.Context, userID, collectionID uuid.UUID) error

	// GetStatusStatistics returns the user's progress record counts grouped
	// by learning status. Statuses with no records map to zero.
	GetStatusStatistics(ctx context.Context, userID uuid.UUID) (map[domain.LearningStatus]int, error)

	// GetStatusStatisticsForCollection is GetStatusStatistics restricted to
	// one collection.
	GetStatusStatisticsForCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
	) (map[domain.LearningStatus]int, error)
}
