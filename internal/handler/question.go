package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"trivia-api/internal/domain"
	"trivia-api/internal/service"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	trivia *service.TriviaService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(trivia *service.TriviaService) *QuestionHandler {
	return &QuestionHandler{trivia: trivia}
}

// ListQuestionsResponse is the payload for the paginated question list.
// CurrentCategory is always null; this endpoint has no category context.
type ListQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[int]string    `json:"categories"`
	CurrentCategory *int              `json:"current_category"`
}

// DeleteQuestionResponse is the payload for a successful delete
type DeleteQuestionResponse struct {
	Success        bool              `json:"success"`
	Deleted        int               `json:"deleted"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CreateQuestionResponse is the payload for a successful create
type CreateQuestionResponse struct {
	Success        bool              `json:"success"`
	Created        int               `json:"created"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// SearchRequest is the body of a question search
type SearchRequest struct {
	Search string `json:"search"`
}

// SearchResponse is the payload for a question search
type SearchResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// ListQuestions returns one fixed-size page of all questions
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	result, err := h.trivia.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return respondError(c, statusFor(err))
	}

	return c.JSON(http.StatusOK, ListQuestionsResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     categoryMap(result.Categories),
	})
}

// DeleteQuestion deletes one question by ID and returns the requested
// page of the remaining questions
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound)
	}

	result, err := h.trivia.DeleteQuestion(c.Request().Context(), id, pageParam(c))
	if err != nil {
		return respondError(c, statusFor(err))
	}

	return c.JSON(http.StatusOK, DeleteQuestionResponse{
		Success:        true,
		Deleted:        result.Deleted,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

// CreateQuestion inserts a new question. Field presence is not checked
// here; a body missing required fields fails in the store and comes back
// as unprocessable.
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var req domain.NewQuestion
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest)
	}

	result, err := h.trivia.CreateQuestion(c.Request().Context(), &req, pageParam(c))
	if err != nil {
		return respondError(c, statusFor(err))
	}

	return c.JSON(http.StatusOK, CreateQuestionResponse{
		Success:        true,
		Created:        result.Created,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

// SearchQuestions returns the questions whose text contains the search
// term. An absent term matches everything; zero matches is an empty 200.
func (h *QuestionHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest)
	}

	result, err := h.trivia.SearchQuestions(c.Request().Context(), req.Search, pageParam(c))
	if err != nil {
		return respondError(c, statusFor(err))
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

// pageParam reads the page query parameter, falling back to the first
// page for absent, non-numeric, or non-positive values.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
