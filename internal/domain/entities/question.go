// Package entities contains domain entities used across the application.
package entities

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Kind is the question type. It selects which CorrectAnswer field is meaningful.
type Kind string

const (
	KindMultiple  Kind = "multiple"
	KindTrueFalse Kind = "trueFalse"
	KindMatch     Kind = "match"
	KindFillBlank Kind = "fillBlank"
	KindOrder     Kind = "order"
)

// Category groups questions by learning unit.
type Category string

const (
	CategorySA1 Category = "SA1"
	CategorySA2 Category = "SA2"
	CategorySA4 Category = "SA4"
)

// Fixed tokens of a true/false question.
const (
	TrueToken  = "Vertader"
	FalseToken = "Fals"
)

// BlankMarker matches the gap in a fill-in-the-blank prompt.
var BlankMarker = regexp.MustCompile(`_{3,}`)

// CorrectAnswer holds the expected answer. Exactly one field is set, depending on the question kind:
// Text for multiple, trueFalse and fillBlank; Sequence for order; Pairs for match.
type CorrectAnswer struct {
	Text     string
	Sequence []string
	Pairs    map[string]string
}

// Question is an immutable entry of the question bank.
type Question struct {
	ID       int           `json:"id" validate:"gt=0"`
	Category Category      `json:"sa" validate:"oneof=SA1 SA2 SA4"`
	Kind     Kind          `json:"type" validate:"oneof=multiple trueFalse match fillBlank order"`
	Prompt   string        `json:"question" validate:"required"`
	Options  []string      `json:"options,omitempty" validate:"omitempty,dive,required"`
	Correct  CorrectAnswer `json:"-"`
	Hints    []string      `json:"hints" validate:"dive,required"`
	Feedback string        `json:"feedback" validate:"required"`

	// Targets is the right-hand column of a match question in display order.
	// It is filled by the shuffler and is empty in the bank itself.
	Targets []string `json:"-"`
}

// questionJSON mirrors Question on the wire with the polymorphic correctAnswer field.
type questionJSON struct {
	ID            int             `json:"id"`
	Category      Category        `json:"sa"`
	Kind          Kind            `json:"type"`
	Prompt        string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Hints         []string        `json:"hints"`
	Feedback      string          `json:"feedback"`
}

// UnmarshalJSON decodes correctAnswer according to the question kind.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	correct, err := DecodeCorrectAnswer(raw.Kind, raw.CorrectAnswer)
	if err != nil {
		return fmt.Errorf("question %d: %w", raw.ID, err)
	}

	*q = Question{
		ID:       raw.ID,
		Category: raw.Category,
		Kind:     raw.Kind,
		Prompt:   raw.Prompt,
		Options:  raw.Options,
		Correct:  correct,
		Hints:    raw.Hints,
		Feedback: raw.Feedback,
	}

	return nil
}

// MarshalJSON encodes the question back into the bank format.
func (q Question) MarshalJSON() ([]byte, error) {
	answer, err := EncodeCorrectAnswer(q.Kind, q.Correct)
	if err != nil {
		return nil, err
	}

	return json.Marshal(questionJSON{
		ID:            q.ID,
		Category:      q.Category,
		Kind:          q.Kind,
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectAnswer: answer,
		Hints:         q.Hints,
		Feedback:      q.Feedback,
	})
}

// DecodeCorrectAnswer parses the raw correctAnswer value for the given kind.
func DecodeCorrectAnswer(kind Kind, raw json.RawMessage) (CorrectAnswer, error) {
	var ca CorrectAnswer

	switch kind {
	case KindMultiple, KindTrueFalse, KindFillBlank:
		if err := json.Unmarshal(raw, &ca.Text); err != nil {
			return ca, fmt.Errorf("correctAnswer of %s must be a string: %w", kind, err)
		}
	case KindOrder:
		if err := json.Unmarshal(raw, &ca.Sequence); err != nil {
			return ca, fmt.Errorf("correctAnswer of %s must be a list of strings: %w", kind, err)
		}
	case KindMatch:
		if err := json.Unmarshal(raw, &ca.Pairs); err != nil {
			return ca, fmt.Errorf("correctAnswer of %s must be an object of strings: %w", kind, err)
		}
	default:
		return ca, fmt.Errorf("unknown question type %q", kind)
	}

	return ca, nil
}

// EncodeCorrectAnswer is the inverse of DecodeCorrectAnswer.
func EncodeCorrectAnswer(kind Kind, ca CorrectAnswer) (json.RawMessage, error) {
	switch kind {
	case KindMultiple, KindTrueFalse, KindFillBlank:
		return json.Marshal(ca.Text)
	case KindOrder:
		return json.Marshal(ca.Sequence)
	case KindMatch:
		return json.Marshal(ca.Pairs)
	default:
		return nil, fmt.Errorf("unknown question type %q", kind)
	}
}

// HasBlank reports whether the prompt contains a blank marker.
func (q Question) HasBlank() bool {
	return BlankMarker.MatchString(q.Prompt)
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	out.Options = cloneStrings(q.Options)
	out.Hints = cloneStrings(q.Hints)
	out.Targets = cloneStrings(q.Targets)
	out.Correct.Sequence = cloneStrings(q.Correct.Sequence)
	if q.Correct.Pairs != nil {
		out.Correct.Pairs = make(map[string]string, len(q.Correct.Pairs))
		for k, v := range q.Correct.Pairs {
			out.Correct.Pairs[k] = v
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
