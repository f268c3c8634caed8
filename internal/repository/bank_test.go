package repository

import (
	"errors"
	"testing"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

func validMultiple(id int) entities.Question {
	return entities.Question{
		ID:       id,
		Category: entities.CategorySA1,
		Kind:     entities.KindMultiple,
		Prompt:   "Pregunta",
		Options:  []string{"A", "B"},
		Correct:  entities.CorrectAnswer{Text: "A"},
		Hints:    []string{"pista"},
		Feedback: "Retroacció",
	}
}

func TestValidateBank(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *entities.Question)
		wantErr bool
	}{
		{name: "valid multiple", mutate: func(*entities.Question) {}},
		{name: "zero id", mutate: func(q *entities.Question) { q.ID = 0 }, wantErr: true},
		{name: "unknown category", mutate: func(q *entities.Question) { q.Category = "SA3" }, wantErr: true},
		{name: "unknown kind", mutate: func(q *entities.Question) { q.Kind = "essay" }, wantErr: true},
		{name: "empty prompt", mutate: func(q *entities.Question) { q.Prompt = "" }, wantErr: true},
		{name: "empty feedback", mutate: func(q *entities.Question) { q.Feedback = "" }, wantErr: true},
		{name: "empty hint", mutate: func(q *entities.Question) { q.Hints = []string{""} }, wantErr: true},
		{name: "no hints", mutate: func(q *entities.Question) { q.Hints = nil }},
		{name: "answer not an option", mutate: func(q *entities.Question) { q.Correct.Text = "C" }, wantErr: true},
		{name: "single option", mutate: func(q *entities.Question) { q.Options = []string{"A"} }, wantErr: true},
		{
			name: "true false",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindTrueFalse
				q.Options = []string{entities.FalseToken, entities.TrueToken}
				q.Correct.Text = entities.FalseToken
			},
		},
		{
			name: "true false with other token",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindTrueFalse
				q.Options = []string{entities.TrueToken, entities.FalseToken}
				q.Correct.Text = "Sí"
			},
			wantErr: true,
		},
		{
			name: "fill blank",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindFillBlank
				q.Prompt = "La ___ és"
				q.Options = nil
			},
		},
		{
			name: "fill blank without marker",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindFillBlank
				q.Prompt = "La __ és"
				q.Options = nil
			},
			wantErr: true,
		},
		{
			name: "fill blank with options",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindFillBlank
				q.Prompt = "La ___ és"
			},
			wantErr: true,
		},
		{
			name: "order",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindOrder
				q.Options = []string{"x", "y", "z"}
				q.Correct = entities.CorrectAnswer{Sequence: []string{"z", "x", "y"}}
			},
		},
		{
			name: "order not a permutation",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindOrder
				q.Options = []string{"x", "y", "z"}
				q.Correct = entities.CorrectAnswer{Sequence: []string{"z", "x", "x"}}
			},
			wantErr: true,
		},
		{
			name: "order item with comma",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindOrder
				q.Options = []string{"x,1", "y"}
				q.Correct = entities.CorrectAnswer{Sequence: []string{"y", "x,1"}}
			},
			wantErr: true,
		},
		{
			name: "match",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindMatch
				q.Options = []string{"a", "b"}
				q.Correct = entities.CorrectAnswer{Pairs: map[string]string{"a": "1", "b": "2"}}
			},
		},
		{
			name: "match missing pair",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindMatch
				q.Options = []string{"a", "b"}
				q.Correct = entities.CorrectAnswer{Pairs: map[string]string{"a": "1", "c": "2"}}
			},
			wantErr: true,
		},
		{
			name: "match duplicate target",
			mutate: func(q *entities.Question) {
				q.Kind = entities.KindMatch
				q.Options = []string{"a", "b"}
				q.Correct = entities.CorrectAnswer{Pairs: map[string]string{"a": "1", "b": "1"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validMultiple(1)
			tt.mutate(&q)

			err := ValidateBank([]entities.Question{q})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBank) {
					t.Errorf("ValidateBank() error = %v, want %v", err, ErrInvalidBank)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateBank() error = %v", err)
			}
		})
	}
}

func TestValidateBank_DuplicateIDs(t *testing.T) {
	err := ValidateBank([]entities.Question{validMultiple(1), validMultiple(1)})
	if !errors.Is(err, ErrInvalidBank) {
		t.Errorf("ValidateBank() error = %v, want %v", err, ErrInvalidBank)
	}
}

func TestValidateBank_Empty(t *testing.T) {
	if err := ValidateBank(nil); !errors.Is(err, ErrEmptyBank) {
		t.Errorf("ValidateBank(nil) error = %v, want %v", err, ErrEmptyBank)
	}
}

func TestNewQuestionRepositoryFromQuestions_FillsTrueFalseOptions(t *testing.T) {
	q := validMultiple(1)
	q.Kind = entities.KindTrueFalse
	q.Options = nil
	q.Correct.Text = entities.TrueToken

	repo, err := NewQuestionRepositoryFromQuestions([]entities.Question{q})
	if err != nil {
		t.Fatalf("NewQuestionRepositoryFromQuestions() error = %v", err)
	}

	got := repo.GetAll()[0].Options
	if len(got) != 2 || got[0] != entities.TrueToken || got[1] != entities.FalseToken {
		t.Errorf("Options = %v, want [%s %s]", got, entities.TrueToken, entities.FalseToken)
	}
}
