package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/infra/postgres"
)

var ErrNoQuestions = errors.New("no questions stored")

// QuestionRepository reads and writes the question bank in the questions table.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database handle.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// questionRow is a questions table row as scanned by pgx.
type questionRow struct {
	ID            int
	Category      string
	Kind          string
	Prompt        string
	Options       []string
	CorrectAnswer []byte // jsonb
	Hints         []string
	Feedback      string
}

// GetAll returns every stored question ordered by id.
func (r *QuestionRepository) GetAll(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT id, category, kind, prompt, options, correct_answer, hints, feedback
		FROM questions
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var row questionRow
		if err := rows.Scan(
			&row.ID,
			&row.Category,
			&row.Kind,
			&row.Prompt,
			&row.Options,
			&row.CorrectAnswer,
			&row.Hints,
			&row.Feedback,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		q, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	return questions, nil
}

// Upsert creates or replaces a question.
func (r *QuestionRepository) Upsert(ctx context.Context, q entities.Question) error {
	row, err := questionToRow(q)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO questions (
			id, category, kind, prompt, options, correct_answer, hints, feedback
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			kind = EXCLUDED.kind,
			prompt = EXCLUDED.prompt,
			options = EXCLUDED.options,
			correct_answer = EXCLUDED.correct_answer,
			hints = EXCLUDED.hints,
			feedback = EXCLUDED.feedback,
			updated_at = NOW()
	`

	_, err = r.db.Exec(
		ctx,
		query,
		row.ID,
		row.Category,
		row.Kind,
		row.Prompt,
		row.Options,
		row.CorrectAnswer,
		row.Hints,
		row.Feedback,
	)
	if err != nil {
		return fmt.Errorf("upsert question %d: %w", q.ID, err)
	}

	return nil
}

func (row questionRow) toEntity() (entities.Question, error) {
	kind := entities.Kind(row.Kind)

	correct, err := entities.DecodeCorrectAnswer(kind, row.CorrectAnswer)
	if err != nil {
		return entities.Question{}, fmt.Errorf("question %d: %w", row.ID, err)
	}

	return entities.Question{
		ID:       row.ID,
		Category: entities.Category(row.Category),
		Kind:     kind,
		Prompt:   row.Prompt,
		Options:  row.Options,
		Correct:  correct,
		Hints:    row.Hints,
		Feedback: row.Feedback,
	}, nil
}

func questionToRow(q entities.Question) (questionRow, error) {
	answer, err := entities.EncodeCorrectAnswer(q.Kind, q.Correct)
	if err != nil {
		return questionRow{}, fmt.Errorf("question %d: %w", q.ID, err)
	}

	options := q.Options
	if options == nil {
		options = []string{}
	}
	hints := q.Hints
	if hints == nil {
		hints = []string{}
	}

	return questionRow{
		ID:            q.ID,
		Category:      string(q.Category),
		Kind:          string(q.Kind),
		Prompt:        q.Prompt,
		Options:       options,
		CorrectAnswer: answer,
		Hints:         hints,
		Feedback:      q.Feedback,
	}, nil
}
