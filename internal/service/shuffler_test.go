package service

import (
	"slices"
	"testing"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

func testBank() []entities.Question {
	bank := []entities.Question{
		multipleQuestion(1),
		orderQuestion(2),
		matchQuestion(3),
		fillBlankQuestion(4),
		trueFalseQuestion(5),
	}
	for id := 6; id <= 12; id++ {
		bank = append(bank, multipleQuestion(id))
	}
	return bank
}

func ids(qs []entities.Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestShuffler_WorkingSetIsPermutation(t *testing.T) {
	bank := testBank()

	for seed := int64(1); seed <= 20; seed++ {
		ws := NewShuffler(seed).WorkingSet(bank)

		got := ids(ws)
		slices.Sort(got)
		if !slices.Equal(got, ids(bank)) {
			t.Fatalf("seed %d: ids = %v, want a permutation of %v", seed, got, ids(bank))
		}

		for _, q := range ws {
			orig := bank[slices.IndexFunc(bank, func(b entities.Question) bool { return b.ID == q.ID })]
			a, b := slices.Clone(q.Options), slices.Clone(orig.Options)
			slices.Sort(a)
			slices.Sort(b)
			if !slices.Equal(a, b) {
				t.Errorf("seed %d, question %d: options %v are not a permutation of %v", seed, q.ID, q.Options, orig.Options)
			}
		}
	}
}

func TestShuffler_BankNotMutated(t *testing.T) {
	bank := testBank()
	before := testBank()

	ws := NewShuffler(7).WorkingSet(bank)
	ws[0].Options = append(ws[0].Options, "extra")
	ws[0].Prompt = "changed"

	for i := range bank {
		if bank[i].ID != before[i].ID || !slices.Equal(bank[i].Options, before[i].Options) || bank[i].Prompt != before[i].Prompt {
			t.Fatalf("bank question %d changed: %+v", i, bank[i])
		}
	}
}

func TestShuffler_SeedIsDeterministic(t *testing.T) {
	bank := testBank()

	a := NewShuffler(99).WorkingSet(bank)
	b := NewShuffler(99).WorkingSet(bank)

	if !slices.Equal(ids(a), ids(b)) {
		t.Fatalf("same seed produced different orders: %v vs %v", ids(a), ids(b))
	}
	for i := range a {
		if !slices.Equal(a[i].Options, b[i].Options) || !slices.Equal(a[i].Targets, b[i].Targets) {
			t.Errorf("question %d shuffled differently with the same seed", a[i].ID)
		}
	}
}

func TestShuffler_OrderNeverPresentedSolved(t *testing.T) {
	bank := []entities.Question{
		{
			ID:      1,
			Kind:    entities.KindOrder,
			Options: []string{"A", "B"},
			Correct: entities.CorrectAnswer{Sequence: []string{"A", "B"}},
		},
		orderQuestion(2),
	}

	for seed := int64(1); seed <= 200; seed++ {
		for _, q := range NewShuffler(seed).WorkingSet(bank) {
			if slices.Equal(q.Options, q.Correct.Sequence) {
				t.Fatalf("seed %d: question %d presented already solved: %v", seed, q.ID, q.Options)
			}
		}
	}
}

func TestShuffler_MatchTargets(t *testing.T) {
	bank := []entities.Question{matchQuestion(1)}

	ws := NewShuffler(3).WorkingSet(bank)
	targets := slices.Clone(ws[0].Targets)
	slices.Sort(targets)

	if want := []string{"borda", "miola"}; !slices.Equal(targets, want) {
		t.Errorf("Targets = %v, want a permutation of %v", ws[0].Targets, want)
	}
	if len(bank[0].Targets) != 0 {
		t.Errorf("bank Targets = %v, want empty", bank[0].Targets)
	}
}

func TestShuffler_EmptyBank(t *testing.T) {
	if ws := NewShuffler(1).WorkingSet(nil); len(ws) != 0 {
		t.Errorf("WorkingSet(nil) = %v, want empty", ws)
	}
}
