package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

// Answers maps question IDs to ratings. A question without an entry counts as
// types.DefaultRating.
type Answers map[types.QuestionID]types.Rating

// CategoryScore is the sum of a category's ratings
type CategoryScore struct {
	Category Category
	Score    int
}

// Scores holds category scores in questionnaire definition order
type Scores []CategoryScore

// Get returns the score of the category with the given ID
func (s Scores) Get(id types.CategoryID) (int, bool) {
	for _, cs := range s {
		if cs.Category.ID == id {
			return cs.Score, true
		}
	}
	return 0, false
}

// Labels returns category labels in order
func (s Scores) Labels() []string {
	labels := make([]string, len(s))
	for i, cs := range s {
		labels[i] = cs.Category.Label
	}
	return labels
}

// Values returns scores in order
func (s Scores) Values() []int {
	values := make([]int, len(s))
	for i, cs := range s {
		values[i] = cs.Score
	}
	return values
}

// Validate checks answers against the questionnaire without scoring them
func (q *Questionnaire) Validate(answers Answers) error {
	for id, rating := range answers {
		if !q.HasQuestion(id) {
			return goerr.Wrap(ErrUnknownQuestion, "answer for unknown question", goerr.V(QuestionIDKey, id))
		}
		if err := rating.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidRating, err.Error(),
				goerr.V(QuestionIDKey, id),
				goerr.V(RatingKey, int(rating)))
		}
	}
	return nil
}

// Score sums the ratings of each category. Unanswered questions count as
// types.DefaultRating, so every category always has exactly its own
// questions' ratings in its total.
func (q *Questionnaire) Score(answers Answers) (Scores, error) {
	if err := q.Validate(answers); err != nil {
		return nil, err
	}

	scores := make(Scores, 0, len(q.categories))
	for _, cat := range q.Categories() {
		total := 0
		for _, question := range cat.Questions {
			rating, ok := answers[question.ID]
			if !ok {
				rating = types.DefaultRating
			}
			total += rating.Int()
		}
		scores = append(scores, CategoryScore{Category: cat, Score: total})
	}
	return scores, nil
}

// NeedsAdvice reports whether score reaches the advice threshold
func (q *Questionnaire) NeedsAdvice(score int) bool {
	return score >= q.threshold
}
