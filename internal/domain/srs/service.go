package srs

import (
	"errors"
	"time"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// Common errors
var (
	ErrNilProgress   = errors.New("learning progress cannot be nil")
	ErrInvalidStatus = errors.New("invalid learning status")
)

// Service defines the interface for scheduling operations. Both methods
// follow the immutable update pattern: they return a new progress record
// and never modify the one passed in.
type Service interface {
	// Schedule applies one answer to a progress record: it increments the
	// counters, adjusts the ease factor, runs the status transition
	// machine and stamps the review timestamps.
	Schedule(
		progress *domain.LearningProgress,
		correct bool,
		now time.Time,
	) (*domain.LearningProgress, error)

	// Reset returns the record to its initial state: status NEW, ease
	// factor 2.5, counters at zero, due immediately.
	Reset(
		progress *domain.LearningProgress,
		now time.Time,
	) (*domain.LearningProgress, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Schedule implements the Service interface.
func (s *defaultService) Schedule(
	progress *domain.LearningProgress,
	correct bool,
	now time.Time,
) (*domain.LearningProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if !progress.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return schedule(progress, correct, now, s.params), nil
}

// Reset implements the Service interface.
func (s *defaultService) Reset(
	progress *domain.LearningProgress,
	now time.Time,
) (*domain.LearningProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	next := progress.Clone()
	next.RepetitionCount = 0
	next.CorrectAnswers = 0
	next.IncorrectAnswers = 0
	next.EaseFactor = domain.DefaultEaseFactor
	next.Status = domain.StatusNew
	due := now
	next.NextReviewDue = &due
	next.UpdatedAt = now

	return next, nil
}
