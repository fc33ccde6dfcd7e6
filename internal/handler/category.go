package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"trivia-api/internal/domain"
	"trivia-api/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	trivia *service.TriviaService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(trivia *service.TriviaService) *CategoryHandler {
	return &CategoryHandler{trivia: trivia}
}

// ListCategoriesResponse is the payload for listing all categories
type ListCategoriesResponse struct {
	Success         bool           `json:"success"`
	Categories      map[int]string `json:"categories"`
	TotalCategories int            `json:"total_categories"`
}

// QuestionsByCategoryResponse is the payload for a category-filtered
// question listing
type QuestionsByCategoryResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
	Category       *domain.Category  `json:"category"`
}

// ListCategories returns all categories as an id-to-type mapping
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.trivia.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, ListCategoriesResponse{
		Success:         true,
		Categories:      categoryMap(categories),
		TotalCategories: len(categories),
	})
}

// QuestionsByCategory returns every question in one category, uncapped
func (h *CategoryHandler) QuestionsByCategory(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound)
	}

	result, err := h.trivia.QuestionsByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, statusFor(err))
	}

	return c.JSON(http.StatusOK, QuestionsByCategoryResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Category:       result.Category,
	})
}

// categoryMap flattens categories into the id-to-type mapping the
// listing payloads carry.
func categoryMap(categories []domain.Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, category := range categories {
		m[category.ID] = category.Type
	}
	return m
}
