package repository

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

const bankPath = "../../assets/data/questions.json"

func TestNewQuestionRepository_ShippedBank(t *testing.T) {
	repo, err := NewQuestionRepository(bankPath)
	if err != nil {
		t.Fatalf("NewQuestionRepository() error = %v", err)
	}

	if repo.Len() != 19 {
		t.Errorf("Len() = %d, want 19", repo.Len())
	}

	kinds := make(map[entities.Kind]int)
	for _, q := range repo.GetAll() {
		kinds[q.Kind]++
		if q.Kind == entities.KindTrueFalse && len(q.Options) != 2 {
			t.Errorf("question %d: true/false options = %v, want the two fixed tokens", q.ID, q.Options)
		}
	}
	for _, k := range []entities.Kind{
		entities.KindMultiple, entities.KindTrueFalse, entities.KindMatch, entities.KindFillBlank, entities.KindOrder,
	} {
		if kinds[k] == 0 {
			t.Errorf("no %s questions in the bank", k)
		}
	}

	order, err := repo.GetByID(5)
	if err != nil {
		t.Fatalf("GetByID(5) error = %v", err)
	}
	if order.Kind != entities.KindOrder || len(order.Correct.Sequence) != len(order.Options) {
		t.Errorf("GetByID(5) = %+v, want an order question with a full sequence", order)
	}
}

func TestQuestionRepository_ReturnsCopies(t *testing.T) {
	repo, err := NewQuestionRepository(bankPath)
	if err != nil {
		t.Fatalf("NewQuestionRepository() error = %v", err)
	}

	all := repo.GetAll()
	orig := slices.Clone(all[0].Options)
	all[0].Options[0] = "mutated"
	all[0].Prompt = "mutated"

	again := repo.GetAll()
	if !slices.Equal(again[0].Options, orig) || again[0].Prompt == "mutated" {
		t.Error("GetAll() exposes the repository's internal slice")
	}
}

func TestQuestionRepository_GetByIDNotFound(t *testing.T) {
	repo, err := NewQuestionRepositoryFromQuestions([]entities.Question{validMultiple(1)})
	if err != nil {
		t.Fatalf("NewQuestionRepositoryFromQuestions() error = %v", err)
	}

	if _, err := repo.GetByID(99); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("GetByID(99) error = %v, want %v", err, ErrQuestionNotFound)
	}
}

func TestNewQuestionRepository_FileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewQuestionRepository(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file: error = nil")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"questions": [`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewQuestionRepository(broken); err == nil {
		t.Error("malformed JSON: error = nil")
	}

	wrongShape := filepath.Join(dir, "wrong.json")
	data := `{"questions": [{"id": 1, "sa": "SA1", "type": "order", "question": "q", "options": ["a","b"],
		"correctAnswer": "a,b", "hints": [], "feedback": "f"}]}`
	if err := os.WriteFile(wrongShape, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewQuestionRepository(wrongShape); err == nil {
		t.Error("order answer given as a string: error = nil")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"questions": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewQuestionRepository(empty); !errors.Is(err, ErrEmptyBank) {
		t.Errorf("empty bank: error = %v, want %v", err, ErrEmptyBank)
	}
}
