package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trivia-api/internal/domain"
	"trivia-api/internal/service"
)

// QuizHandler handles quiz-play HTTP requests
type QuizHandler struct {
	trivia *service.TriviaService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(trivia *service.TriviaService) *QuizHandler {
	return &QuizHandler{trivia: trivia}
}

// QuizRequest is the body of a next-question request. A category ID of
// zero means any category. The caller accumulates PreviousQuestions
// across turns; the server keeps no quiz state.
type QuizRequest struct {
	PreviousQuestions []int        `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

// QuizCategory identifies the category a quiz is restricted to
type QuizCategory struct {
	ID int `json:"id"`
}

// QuizResponse is the payload carrying the next quiz question
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// NextQuestion picks one random question not yet asked in this quiz.
// An exhausted pool is reported as method not allowed, a quirk kept for
// compatibility with existing clients.
func (h *QuizHandler) NextQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest)
	}

	question, err := h.trivia.NextQuizQuestion(c.Request().Context(), req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		return respondError(c, statusFor(err))
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:  true,
		Question: question,
	})
}
