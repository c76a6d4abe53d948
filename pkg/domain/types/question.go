package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// QuestionID identifies a question. It is used as the form field name and
// the key of answer files, e.g. "a-1".
type QuestionID string

// Validate checks if the QuestionID is valid
func (q QuestionID) Validate() error {
	if q == "" {
		return goerr.New("question ID cannot be empty")
	}
	if !idPattern.MatchString(string(q)) {
		return goerr.New("question ID must be lowercase alphanumeric with hyphens", goerr.V("id", q))
	}
	return nil
}

// String returns the string representation of QuestionID
func (q QuestionID) String() string {
	return string(q)
}
