package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trivia-api/internal/domain"
)

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// List retrieves all questions ordered by ID
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, answer, difficulty, category
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT id, question, answer, difficulty, category
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Difficulty,
		&question.Category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create inserts a new question and returns the store-assigned ID.
// Absent fields are inserted as NULL; the columns' NOT NULL constraints
// reject them.
func (r *QuestionRepository) Create(ctx context.Context, question *domain.NewQuestion) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, difficulty, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		question.Question,
		question.Answer,
		question.Difficulty,
		question.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}
	return id, nil
}

// Delete deletes a question by its ID
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// Search retrieves all questions whose text contains the term,
// case-insensitively, ordered by ID. The match is against the question
// text only, never the answer.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, answer, difficulty, category
		FROM questions
		WHERE question ILIKE '%' || $1 || '%'
		ORDER BY id
	`, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListByCategory retrieves all questions in a category ordered by ID
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, answer, difficulty, category
		FROM questions
		WHERE category = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions by category: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListExcluding retrieves all questions whose IDs are not in the excluded
// set, restricted to a category when categoryID is non-zero.
func (r *QuestionRepository) ListExcluding(ctx context.Context, categoryID int, excluded []int) ([]domain.Question, error) {
	if excluded == nil {
		excluded = []int{}
	}

	var (
		rows pgx.Rows
		err  error
	)
	if categoryID == 0 {
		rows, err = r.pool.Query(ctx, `
			SELECT id, question, answer, difficulty, category
			FROM questions
			WHERE NOT (id = ANY($1))
			ORDER BY id
		`, excluded)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, question, answer, difficulty, category
			FROM questions
			WHERE category = $1 AND NOT (id = ANY($2))
			ORDER BY id
		`, categoryID, excluded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list unused questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	questions := []domain.Question{}
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.Question,
			&question.Answer,
			&question.Difficulty,
			&question.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}
