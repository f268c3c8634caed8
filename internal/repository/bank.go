package repository

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateBank checks every question against its struct rules and the per-kind invariants.
// All problems are reported together, wrapped in ErrInvalidBank.
func ValidateBank(questions []entities.Question) error {
	if len(questions) == 0 {
		return ErrEmptyBank
	}

	var errs []error
	seen := make(map[int]struct{}, len(questions))

	for _, q := range questions {
		if _, ok := seen[q.ID]; ok {
			errs = append(errs, fmt.Errorf("question %d: duplicate id", q.ID))
		}
		seen[q.ID] = struct{}{}

		if err := ValidateQuestion(q); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBank, errors.Join(errs...))
	}

	return nil
}

// ValidateQuestion checks a single question.
func ValidateQuestion(q entities.Question) error {
	if err := validate.Struct(q); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return fmt.Errorf("question %d: invalid fields: %s", q.ID, strings.Join(fields, ", "))
		}
		return fmt.Errorf("question %d: %w", q.ID, err)
	}

	var err error
	switch q.Kind {
	case entities.KindMultiple:
		err = checkMultiple(q)
	case entities.KindTrueFalse:
		err = checkTrueFalse(q)
	case entities.KindFillBlank:
		err = checkFillBlank(q)
	case entities.KindOrder:
		err = checkOrder(q)
	case entities.KindMatch:
		err = checkMatch(q)
	}
	if err != nil {
		return fmt.Errorf("question %d: %w", q.ID, err)
	}

	return nil
}

func checkMultiple(q entities.Question) error {
	if len(q.Options) < 2 {
		return errors.New("multiple choice needs at least two options")
	}
	if !slices.Contains(q.Options, q.Correct.Text) {
		return fmt.Errorf("correct answer %q is not one of the options", q.Correct.Text)
	}
	return nil
}

func checkTrueFalse(q entities.Question) error {
	if q.Correct.Text != entities.TrueToken && q.Correct.Text != entities.FalseToken {
		return fmt.Errorf("correct answer must be %q or %q", entities.TrueToken, entities.FalseToken)
	}
	if len(q.Options) != 2 ||
		!slices.Contains(q.Options, entities.TrueToken) ||
		!slices.Contains(q.Options, entities.FalseToken) {
		return errors.New("true/false options must be exactly the two fixed tokens")
	}
	return nil
}

func checkFillBlank(q entities.Question) error {
	if len(q.Options) != 0 {
		return errors.New("fill-in-the-blank must not have options")
	}
	if !q.HasBlank() {
		return errors.New("prompt has no blank marker")
	}
	if strings.TrimSpace(q.Correct.Text) == "" {
		return errors.New("correct answer is blank")
	}
	return nil
}

func checkOrder(q entities.Question) error {
	if len(q.Options) < 2 {
		return errors.New("ordering needs at least two items")
	}
	if strings.Contains(strings.Join(q.Options, ""), ",") {
		return errors.New("ordering items must not contain commas")
	}
	if !isPermutation(q.Options, q.Correct.Sequence) {
		return errors.New("correct order is not a permutation of the options")
	}
	return nil
}

func checkMatch(q entities.Question) error {
	if len(q.Options) < 2 {
		return errors.New("matching needs at least two pairs")
	}
	if len(q.Correct.Pairs) != len(q.Options) {
		return fmt.Errorf("expected %d pairs, got %d", len(q.Options), len(q.Correct.Pairs))
	}

	keys := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := keys[o]; dup {
			return fmt.Errorf("option %q appears twice", o)
		}
		keys[o] = struct{}{}
		if _, ok := q.Correct.Pairs[o]; !ok {
			return fmt.Errorf("option %q has no pair", o)
		}
	}

	values := make(map[string]struct{}, len(q.Correct.Pairs))
	for _, v := range q.Correct.Pairs {
		if _, dup := values[v]; dup {
			return fmt.Errorf("target %q is used twice", v)
		}
		values[v] = struct{}{}
	}

	return nil
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
