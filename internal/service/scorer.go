package service

import "time"

// ScoringConfig holds the scoring constants.
type ScoringConfig struct {
	Base          int // points for an instant correct answer without hints
	HintPenalty   int // deducted per revealed hint
	SecondPenalty int // deducted per whole second spent on the question
	Floor         int // minimum award for a correct answer
	WrongPenalty  int // awarded (negative) for an incorrect answer
}

// DefaultScoringConfig returns the default scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Base:          100,
		HintPenalty:   25,
		SecondPenalty: 2,
		Floor:         10,
		WrongPenalty:  -50,
	}
}

// Scorer turns the outcome of a submission into a score delta.
type Scorer struct {
	config ScoringConfig
}

// NewScorer creates a scorer with the provided config.
func NewScorer(config ScoringConfig) *Scorer {
	return &Scorer{config: config}
}

// Points computes the score delta of a single submission.
// A correct answer earns base - hints*hintPenalty - seconds*secondPenalty, never less than the floor.
// An incorrect answer always costs the fixed penalty.
func (s *Scorer) Points(correct bool, hintsRevealed int, timeSpent time.Duration) int {
	if !correct {
		return s.config.WrongPenalty
	}

	seconds := int(max(timeSpent, 0) / time.Second)
	points := s.config.Base - s.config.HintPenalty*hintsRevealed - s.config.SecondPenalty*seconds

	return max(points, s.config.Floor)
}
