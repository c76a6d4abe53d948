package model

import "github.com/m-mizutani/goerr/v2"

// Questionnaire definition errors
var (
	ErrInvalidQuestionnaire = goerr.New("invalid questionnaire")
	ErrDuplicateID          = goerr.New("duplicate ID")
)

// Answer errors
var (
	ErrUnknownQuestion = goerr.New("unknown question")
	ErrInvalidRating   = goerr.New("invalid rating")
)

// Context keys for error values
const (
	CategoryIDKey = "category_id"
	QuestionIDKey = "question_id"
	RatingKey     = "rating"
)
