package srs

import "time"

// Params defines all configurable parameters for the scheduling algorithm.
// The defaults reproduce the platform's simplified linear-interval policy.
type Params struct {
	// Ease factor bounds and per-answer adjustments.
	MinEaseFactor    float64
	MaxEaseFactor    float64
	CorrectEaseStep  float64 // added on a correct answer
	WrongEasePenalty float64 // subtracted on an incorrect answer

	// Short re-presentation delays for cards still being drilled.
	NewCorrectDelay      time.Duration // NEW answered correctly
	NewWrongDelay        time.Duration // NEW answered incorrectly
	LearningCorrectDelay time.Duration // LEARNING correct, below graduation threshold
	LearningWrongDelay   time.Duration // LEARNING answered incorrectly
	ReviewWrongDelay     time.Duration // REVIEW answered incorrectly (demotes to LEARNING)

	// Cumulative correct-answer thresholds for promotion.
	ReviewThreshold int // LEARNING -> REVIEW
	KnownThreshold  int // REVIEW -> KNOWN

	// Day-based interval factors for spaced stages.
	GraduationIntervalDays int     // LEARNING -> REVIEW first interval
	KnownLapseIntervalDays int     // KNOWN answered incorrectly, back to REVIEW
	KnownPromotionFactor   float64 // REVIEW -> KNOWN: round(factor * ease) days
	KnownIntervalFactor    float64 // KNOWN correct: round(factor * ease) days
	MaxKnownIntervalDays   int     // cap on the KNOWN interval
}

// NewDefaultParams creates a Params instance with the platform defaults.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:    1.3,
		MaxEaseFactor:    2.5,
		CorrectEaseStep:  0.1,
		WrongEasePenalty: 0.2,

		NewCorrectDelay:      10 * time.Minute,
		NewWrongDelay:        5 * time.Minute,
		LearningCorrectDelay: 30 * time.Minute,
		LearningWrongDelay:   10 * time.Minute,
		ReviewWrongDelay:     3 * time.Hour,

		ReviewThreshold: 3,
		KnownThreshold:  5,

		GraduationIntervalDays: 1,
		KnownLapseIntervalDays: 1,
		KnownPromotionFactor:   7,
		KnownIntervalFactor:    14,
		MaxKnownIntervalDays:   60,
	}
}
