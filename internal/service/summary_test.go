package service

import (
	"testing"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

func TestSummarize(t *testing.T) {
	snap := entities.Snapshot{
		Total:            4,
		Score:            230,
		Mistakes:         2,
		Elapsed:          125,
		CompletionReason: entities.CompletionTimeExpired,
		CategoryTotals: map[entities.Category]int{
			entities.CategorySA2: 1,
			entities.CategorySA1: 3,
		},
		Results: []entities.QuestionResult{
			{QuestionID: 1, Category: entities.CategorySA1, Correct: true},
			{QuestionID: 2, Category: entities.CategorySA1, Correct: true},
			{QuestionID: 4, Category: entities.CategorySA2, Correct: true},
		},
	}

	got := Summarize(snap)

	if got.Correct != 3 || got.Total != 4 {
		t.Errorf("Correct/Total = %d/%d, want 3/4", got.Correct, got.Total)
	}
	if got.Accuracy != 75 {
		t.Errorf("Accuracy = %d, want 75", got.Accuracy)
	}
	if got.AccuracyTier != entities.AccuracyGood {
		t.Errorf("AccuracyTier = %s, want %s", got.AccuracyTier, entities.AccuracyGood)
	}
	if got.MistakesTier != entities.MistakesFew {
		t.Errorf("MistakesTier = %s, want %s", got.MistakesTier, entities.MistakesFew)
	}
	if got.Reason != entities.CompletionTimeExpired || got.Score != 230 || got.Elapsed != 125 {
		t.Errorf("unexpected summary %+v", got)
	}

	want := []entities.CategoryStats{
		{Category: entities.CategorySA1, Correct: 2, Total: 3},
		{Category: entities.CategorySA2, Correct: 1, Total: 1},
	}
	if len(got.Categories) != len(want) {
		t.Fatalf("Categories = %+v, want %+v", got.Categories, want)
	}
	for i := range want {
		if got.Categories[i] != want[i] {
			t.Errorf("Categories[%d] = %+v, want %+v", i, got.Categories[i], want[i])
		}
	}
}

func TestSummarize_Tiers(t *testing.T) {
	tests := []struct {
		correct, total, mistakes int
		wantAccuracy             entities.AccuracyTier
		wantMistakes             entities.MistakesTier
	}{
		{19, 19, 0, entities.AccuracyExcellent, entities.MistakesPerfect},
		{9, 10, 3, entities.AccuracyExcellent, entities.MistakesFew},
		{8, 10, 4, entities.AccuracyGood, entities.MistakesSome},
		{6, 10, 6, entities.AccuracyFair, entities.MistakesSome},
		{5, 10, 7, entities.AccuracyReview, entities.MistakesMany},
		{0, 0, 0, entities.AccuracyReview, entities.MistakesPerfect},
	}

	for _, tt := range tests {
		results := make([]entities.QuestionResult, tt.correct)
		for i := range results {
			results[i] = entities.QuestionResult{Category: entities.CategorySA1, Correct: true}
		}

		got := Summarize(entities.Snapshot{Total: tt.total, Mistakes: tt.mistakes, Results: results})
		if got.AccuracyTier != tt.wantAccuracy || got.MistakesTier != tt.wantMistakes {
			t.Errorf("%d/%d with %d mistakes: tiers = %s/%s, want %s/%s",
				tt.correct, tt.total, tt.mistakes, got.AccuracyTier, got.MistakesTier, tt.wantAccuracy, tt.wantMistakes)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		9:    "00:09",
		60:   "01:00",
		125:  "02:05",
		1800: "30:00",
		-3:   "00:00",
	}

	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
