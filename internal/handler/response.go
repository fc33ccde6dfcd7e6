package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"trivia-api/internal/service"
)

// ErrorResponse is the JSON body returned on every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// respondError writes the error envelope for the given status code
func respondError(c echo.Context, code int) error {
	message, ok := errorMessages[code]
	if !ok {
		code = http.StatusInternalServerError
		message = errorMessages[code]
	}
	return c.JSON(code, ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// statusFor maps service errors to the HTTP error taxonomy. Anything
// unrecognized is an internal server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoMoreQuestions):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
