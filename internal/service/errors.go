package service

import "errors"

// Common service errors. The handler layer maps these to the HTTP error
// taxonomy; anything unrecognized surfaces as an internal server error.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnprocessable   = errors.New("unprocessable")
	ErrNoMoreQuestions = errors.New("no more questions")
)
