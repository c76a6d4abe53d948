package model

import (
	"golang.org/x/text/unicode/norm"
)

// Submission is one "create report" request. Name is optional and is never
// written to logs in clear text.
type Submission struct {
	Name    string  `masq:"secret"`
	Answers Answers
}

// NewSubmission normalizes the respondent name to NFC so that composed and
// decomposed kana render the same in the report. Surrounding spaces are kept;
// only an empty string means "not provided".
func NewSubmission(name string, answers Answers) Submission {
	if answers == nil {
		answers = Answers{}
	}
	return Submission{
		Name:    norm.NFC.String(name),
		Answers: answers,
	}
}

// HasName reports whether the respondent provided a name
func (s Submission) HasName() bool {
	return s.Name != ""
}
