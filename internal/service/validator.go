package service

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

// OrderSeparator joins the items of an ordering answer.
const OrderSeparator = ","

type checkFunc func(q *entities.Question, raw string) bool

// AnswerValidator decides whether a raw answer is correct for a question.
// Checks are pure; malformed answers are reported as incorrect.
type AnswerValidator struct {
	checks map[entities.Kind]checkFunc
}

// NewAnswerValidator creates a new AnswerValidator with a check for every question kind.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{
		checks: map[entities.Kind]checkFunc{
			entities.KindMultiple:  checkText,
			entities.KindTrueFalse: checkText,
			entities.KindFillBlank: checkText,
			entities.KindOrder:     checkOrder,
			entities.KindMatch:     checkMatch,
		},
	}
}

// Validate checks the user's raw answer against the question's correct answer.
func (v *AnswerValidator) Validate(q *entities.Question, raw string) bool {
	if q == nil {
		return false
	}
	check, ok := v.checks[q.Kind]
	if !ok {
		return false
	}
	return check(q, raw)
}

// checkText compares trimmed values ignoring case.
func checkText(q *entities.Question, raw string) bool {
	return normalize(raw) == normalize(q.Correct.Text)
}

// checkOrder requires the comma-separated items to match the target sequence exactly.
func checkOrder(q *entities.Question, raw string) bool {
	return slices.Equal(strings.Split(raw, OrderSeparator), q.Correct.Sequence)
}

// checkMatch parses a JSON object of left->right choices and compares it pair by pair.
func checkMatch(q *entities.Question, raw string) bool {
	var chosen map[string]string
	if err := json.Unmarshal([]byte(raw), &chosen); err != nil {
		return false
	}

	if len(chosen) != len(q.Correct.Pairs) {
		return false
	}

	for left, right := range q.Correct.Pairs {
		got, ok := chosen[left]
		if !ok || got != right {
			return false
		}
	}

	return true
}

// EncodeOrderAnswer builds the raw answer for an ordering question.
func EncodeOrderAnswer(items []string) string {
	return strings.Join(items, OrderSeparator)
}

// EncodeMatchAnswer builds the raw answer for a matching question.
func EncodeMatchAnswer(pairs map[string]string) string {
	data, err := json.Marshal(pairs)
	if err != nil {
		return ""
	}
	return string(data)
}

// normalize normalizes a string for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
