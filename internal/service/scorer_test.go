package service

import (
	"testing"
	"time"
)

func TestScorer_Points(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
		hints   int
		spent   time.Duration
		want    int
	}{
		{"instant correct", true, 0, 0, 100},
		{"sub-second is free", true, 0, 900 * time.Millisecond, 100},
		{"ten seconds", true, 0, 10 * time.Second, 80},
		{"one hint", true, 1, 0, 75},
		{"two hints and seconds", true, 2, 12 * time.Second, 26},
		{"floor with hints", true, 3, 20 * time.Second, 10},
		{"floor with time", true, 0, time.Hour, 10},
		{"negative time counts as zero", true, 0, -5 * time.Second, 100},
		{"incorrect", false, 0, 0, -50},
		{"incorrect ignores hints and time", false, 3, time.Minute, -50},
	}

	s := NewScorer(DefaultScoringConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Points(tt.correct, tt.hints, tt.spent); got != tt.want {
				t.Errorf("Points(%v, %d, %s) = %d, want %d", tt.correct, tt.hints, tt.spent, got, tt.want)
			}
		})
	}
}

func TestScorer_CorrectNeverBelowFloor(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())

	for hints := 0; hints < 5; hints++ {
		for sec := 0; sec <= 120; sec += 7 {
			got := s.Points(true, hints, time.Duration(sec)*time.Second)
			if got < 10 {
				t.Fatalf("Points(true, %d, %ds) = %d, below floor", hints, sec, got)
			}
		}
	}
}

func TestScorer_CustomConfig(t *testing.T) {
	s := NewScorer(ScoringConfig{Base: 50, HintPenalty: 10, SecondPenalty: 1, Floor: 5, WrongPenalty: -20})

	if got := s.Points(true, 1, 5*time.Second); got != 35 {
		t.Errorf("Points() = %d, want 35", got)
	}
	if got := s.Points(false, 0, 0); got != -20 {
		t.Errorf("Points() = %d, want -20", got)
	}
}
