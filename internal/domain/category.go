package domain

import "context"

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	// List retrieves all categories ordered by ID
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)
}

// Category represents a question category
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}
