package service

import (
	"fmt"
	"math"
	"slices"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

// Summarize builds the final-screen data of a session snapshot.
func Summarize(snap entities.Snapshot) entities.Summary {
	correctBy := make(map[entities.Category]int)
	for _, r := range snap.Results {
		if r.Correct {
			correctBy[r.Category]++
		}
	}

	correct := 0
	for _, n := range correctBy {
		correct += n
	}

	accuracy := 0
	if snap.Total > 0 {
		accuracy = int(math.Round(float64(correct) / float64(snap.Total) * 100))
	}

	categories := make([]entities.CategoryStats, 0, len(snap.CategoryTotals))
	for c, total := range snap.CategoryTotals {
		categories = append(categories, entities.CategoryStats{
			Category: c,
			Correct:  correctBy[c],
			Total:    total,
		})
	}
	slices.SortFunc(categories, func(a, b entities.CategoryStats) int {
		if a.Category < b.Category {
			return -1
		}
		if a.Category > b.Category {
			return 1
		}
		return 0
	})

	return entities.Summary{
		Score:        snap.Score,
		Mistakes:     snap.Mistakes,
		Correct:      correct,
		Total:        snap.Total,
		Accuracy:     accuracy,
		Elapsed:      snap.Elapsed,
		Reason:       snap.CompletionReason,
		AccuracyTier: accuracyTier(accuracy),
		MistakesTier: mistakesTier(snap.Mistakes),
		Categories:   categories,
	}
}

func accuracyTier(percent int) entities.AccuracyTier {
	switch {
	case percent >= 90:
		return entities.AccuracyExcellent
	case percent >= 75:
		return entities.AccuracyGood
	case percent >= 60:
		return entities.AccuracyFair
	default:
		return entities.AccuracyReview
	}
}

func mistakesTier(mistakes int) entities.MistakesTier {
	switch {
	case mistakes == 0:
		return entities.MistakesPerfect
	case mistakes <= 3:
		return entities.MistakesFew
	case mistakes <= 6:
		return entities.MistakesSome
	default:
		return entities.MistakesMany
	}
}

// FormatClock renders seconds as mm:ss. Negative values are shown as 00:00.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
