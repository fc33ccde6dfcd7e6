package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves all questions ordered by ID
	List(ctx context.Context) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create creates a new question; the store assigns the ID
	Create(ctx context.Context, question *NewQuestion) (int, error)

	// Delete deletes a question by its ID
	Delete(ctx context.Context, id int) error

	// Search retrieves all questions whose text contains the term,
	// case-insensitively, ordered by ID
	Search(ctx context.Context, term string) ([]Question, error)

	// ListByCategory retrieves all questions in a category ordered by ID
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// ListExcluding retrieves all questions not in the excluded ID set,
	// restricted to a category when categoryID is non-zero
	ListExcluding(ctx context.Context, categoryID int, excluded []int) ([]Question, error)
}

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// NewQuestion carries the fields of a question to be created. Pointer
// fields distinguish absent inputs, which are inserted as NULL and left
// for the store's constraints to reject.
type NewQuestion struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Difficulty *int    `json:"difficulty"`
	Category   *int    `json:"category"`
}
