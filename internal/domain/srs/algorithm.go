package srs

import (
	"math"
	"time"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
)

// nextEaseFactor computes the updated difficulty coefficient from the
// previous one and the correctness of the latest answer.
//
// A correct answer raises the factor by CorrectEaseStep, an incorrect one
// lowers it by WrongEasePenalty. The result is always clamped to
// [MinEaseFactor, MaxEaseFactor], so a card already at the ceiling stays
// there and a struggling card never drops below the floor.
func nextEaseFactor(current float64, correct bool, params *Params) float64 {
	var next float64
	if correct {
		next = current + params.CorrectEaseStep
	} else {
		next = current - params.WrongEasePenalty
	}

	if next < params.MinEaseFactor {
		next = params.MinEaseFactor
	}
	if next > params.MaxEaseFactor {
		next = params.MaxEaseFactor
	}

	return next
}

// nextStatusAndDue runs the status transition machine.
//
// correctAnswers is the cumulative correct counter AFTER the current
// answer has been counted; easeFactor is the factor from BEFORE it.
// The machine is deterministic and exhaustive
// over the four states; it is cyclic, not terminal: KNOWN regresses to
// REVIEW on a wrong answer.
//
//	NEW      correct            -> LEARNING, now + NewCorrectDelay
//	NEW      wrong              -> NEW,      now + NewWrongDelay
//	LEARNING correct, >= 3 seen -> REVIEW,   now + 1 day
//	LEARNING correct, < 3 seen  -> LEARNING, now + LearningCorrectDelay
//	LEARNING wrong              -> LEARNING, now + LearningWrongDelay
//	REVIEW   correct, >= 5 seen -> KNOWN,    now + round(7 * ease) days
//	REVIEW   correct, < 5 seen  -> REVIEW,   now + max(1, round(ease)) days
//	REVIEW   wrong              -> LEARNING, now + ReviewWrongDelay
//	KNOWN    correct            -> KNOWN,    now + min(60, round(14 * ease)) days
//	KNOWN    wrong              -> REVIEW,   now + 1 day
func nextStatusAndDue(
	status domain.LearningStatus,
	easeFactor float64,
	correctAnswers int,
	correct bool,
	now time.Time,
	params *Params,
) (domain.LearningStatus, time.Time) {
	switch status {
	case domain.StatusNew:
		if correct {
			return domain.StatusLearning, now.Add(params.NewCorrectDelay)
		}
		return domain.StatusNew, now.Add(params.NewWrongDelay)

	case domain.StatusLearning:
		if !correct {
			return domain.StatusLearning, now.Add(params.LearningWrongDelay)
		}
		if correctAnswers >= params.ReviewThreshold {
			return domain.StatusReview, now.AddDate(0, 0, params.GraduationIntervalDays)
		}
		return domain.StatusLearning, now.Add(params.LearningCorrectDelay)

	case domain.StatusReview:
		if !correct {
			return domain.StatusLearning, now.Add(params.ReviewWrongDelay)
		}
		if correctAnswers >= params.KnownThreshold {
			days := roundDays(params.KnownPromotionFactor * easeFactor)
			return domain.StatusKnown, now.AddDate(0, 0, days)
		}
		days := roundDays(easeFactor)
		if days < 1 {
			days = 1
		}
		return domain.StatusReview, now.AddDate(0, 0, days)

	case domain.StatusKnown:
		if !correct {
			return domain.StatusReview, now.AddDate(0, 0, params.KnownLapseIntervalDays)
		}
		days := roundDays(params.KnownIntervalFactor * easeFactor)
		if days > params.MaxKnownIntervalDays {
			days = params.MaxKnownIntervalDays
		}
		return domain.StatusKnown, now.AddDate(0, 0, days)
	}

	// Unreachable for valid statuses; Service.Schedule validates first.
	return status, now
}

// schedule applies one answer to a progress record, producing a new record
// with updated counters, ease factor, status and due instant. The input is
// never mutated.
func schedule(
	progress *domain.LearningProgress,
	correct bool,
	now time.Time,
	params *Params,
) *domain.LearningProgress {
	next := progress.Clone()

	next.RepetitionCount++
	if correct {
		next.CorrectAnswers++
	} else {
		next.IncorrectAnswers++
	}

	next.EaseFactor = nextEaseFactor(progress.EaseFactor, correct, params)

	// The transition machine sees the correct counter as updated by the
	// current answer, but the ease factor as it stood before it. The
	// updated factor takes effect on the next scheduling.
	status, due := nextStatusAndDue(
		progress.Status,
		progress.EaseFactor,
		next.CorrectAnswers,
		correct,
		now,
		params,
	)
	next.Status = status
	next.NextReviewDue = &due

	next.LastReviewedAt = now
	next.UpdatedAt = now

	return next
}

// roundDays rounds a fractional day count to the nearest whole day.
func roundDays(days float64) int {
	return int(math.Round(days))
}
