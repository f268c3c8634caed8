package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyBank        = errors.New("question bank is empty")
	ErrInvalidBank      = errors.New("invalid question bank")
)

// QuestionRepository provides read-only access to the question bank.
// The bank is loaded and validated once; callers always receive copies.
type QuestionRepository struct {
	questions []entities.Question
}

// NewQuestionRepository loads the question bank from a JSON file.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	questions, err := loadQuestions(path)
	if err != nil {
		return nil, err
	}

	return NewQuestionRepositoryFromQuestions(questions)
}

// NewQuestionRepositoryFromQuestions validates questions coming from any source
// (a file, the database, tests) and wraps them in a repository.
func NewQuestionRepositoryFromQuestions(questions []entities.Question) (*QuestionRepository, error) {
	normalized := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		normalized = append(normalized, normalizeQuestion(q))
	}

	if err := ValidateBank(normalized); err != nil {
		return nil, err
	}

	return &QuestionRepository{questions: normalized}, nil
}

// GetAll returns the whole bank in its original order.
func (r *QuestionRepository) GetAll() []entities.Question {
	out := make([]entities.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q.Clone())
	}
	return out
}

// GetByID returns the question with the given id.
func (r *QuestionRepository) GetByID(id int) (entities.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return q.Clone(), nil
		}
	}
	return entities.Question{}, ErrQuestionNotFound
}

// Len returns the number of questions in the bank.
func (r *QuestionRepository) Len() int {
	return len(r.questions)
}

func loadQuestions(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var wrapper struct {
		Questions []entities.Question `json:"questions"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	return wrapper.Questions, nil
}

// normalizeQuestion fills the fixed options of a true/false question.
func normalizeQuestion(q entities.Question) entities.Question {
	q = q.Clone()
	if q.Kind == entities.KindTrueFalse && len(q.Options) == 0 {
		q.Options = []string{entities.TrueToken, entities.FalseToken}
	}
	return q
}
