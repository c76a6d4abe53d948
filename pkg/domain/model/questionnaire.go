package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

const (
	// CategoryCount is the number of stress categories in the check
	CategoryCount = 4
	// QuestionsPerCategory is the number of questions each category has
	QuestionsPerCategory = 3
	// AdvicePerCategory is the number of recommendation bullets per category
	AdvicePerCategory = 2
	// DefaultAdviceThreshold is the category score from which advice is given
	DefaultAdviceThreshold = 10
)

// Question is a single rated statement
type Question struct {
	ID   types.QuestionID
	Text string
}

// Category is a stress dimension with its questions and the advice given when
// its score reaches the threshold
type Category struct {
	ID        types.CategoryID
	Label     string
	Questions []Question
	Advice    []string
}

// MinScore returns the lowest possible score of the category
func (c *Category) MinScore() int {
	return len(c.Questions) * types.MinRating.Int()
}

// MaxScore returns the highest possible score of the category
func (c *Category) MaxScore() int {
	return len(c.Questions) * types.MaxRating.Int()
}

// Questionnaire is the immutable stress check definition. It is built once at
// startup and shared by all requests.
type Questionnaire struct {
	title      string
	caption    string
	threshold  int
	categories []Category
	questions  map[types.QuestionID]types.CategoryID
}

// QuestionnaireOption configures optional questionnaire attributes
type QuestionnaireOption func(*Questionnaire)

// WithCaption sets the explanation of the rating scale shown above the form
func WithCaption(caption string) QuestionnaireOption {
	return func(q *Questionnaire) {
		q.caption = caption
	}
}

// WithAdviceThreshold overrides DefaultAdviceThreshold
func WithAdviceThreshold(threshold int) QuestionnaireOption {
	return func(q *Questionnaire) {
		q.threshold = threshold
	}
}

// NewQuestionnaire validates categories and builds a Questionnaire. The given
// categories are deep copied.
func NewQuestionnaire(title string, categories []Category, opts ...QuestionnaireOption) (*Questionnaire, error) {
	q := &Questionnaire{
		title:     title,
		threshold: DefaultAdviceThreshold,
		questions: make(map[types.QuestionID]types.CategoryID),
	}
	for _, opt := range opts {
		opt(q)
	}

	if title == "" {
		return nil, goerr.Wrap(ErrInvalidQuestionnaire, "title is required")
	}
	if len(categories) != CategoryCount {
		return nil, goerr.Wrap(ErrInvalidQuestionnaire, "unexpected number of categories",
			goerr.V("expected", CategoryCount),
			goerr.V("actual", len(categories)))
	}

	seen := make(map[types.CategoryID]bool)
	for _, cat := range categories {
		if err := cat.ID.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid category ID")
		}
		if seen[cat.ID] {
			return nil, goerr.Wrap(ErrDuplicateID, "duplicate category ID", goerr.V(CategoryIDKey, cat.ID))
		}
		seen[cat.ID] = true

		if cat.Label == "" {
			return nil, goerr.Wrap(ErrInvalidQuestionnaire, "category label is required", goerr.V(CategoryIDKey, cat.ID))
		}
		if len(cat.Questions) != QuestionsPerCategory {
			return nil, goerr.Wrap(ErrInvalidQuestionnaire, "unexpected number of questions",
				goerr.V(CategoryIDKey, cat.ID),
				goerr.V("expected", QuestionsPerCategory),
				goerr.V("actual", len(cat.Questions)))
		}
		if len(cat.Advice) != AdvicePerCategory {
			return nil, goerr.Wrap(ErrInvalidQuestionnaire, "unexpected number of advice bullets",
				goerr.V(CategoryIDKey, cat.ID),
				goerr.V("expected", AdvicePerCategory),
				goerr.V("actual", len(cat.Advice)))
		}

		for _, question := range cat.Questions {
			if err := question.ID.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid question ID", goerr.V(CategoryIDKey, cat.ID))
			}
			if _, exists := q.questions[question.ID]; exists {
				return nil, goerr.Wrap(ErrDuplicateID, "duplicate question ID", goerr.V(QuestionIDKey, question.ID))
			}
			if question.Text == "" {
				return nil, goerr.Wrap(ErrInvalidQuestionnaire, "question text is required", goerr.V(QuestionIDKey, question.ID))
			}
			q.questions[question.ID] = cat.ID
		}

		q.categories = append(q.categories, Category{
			ID:        cat.ID,
			Label:     cat.Label,
			Questions: slices.Clone(cat.Questions),
			Advice:    slices.Clone(cat.Advice),
		})
	}

	return q, nil
}

// Title returns the report title
func (q *Questionnaire) Title() string { return q.title }

// Caption returns the explanation of the rating scale
func (q *Questionnaire) Caption() string { return q.caption }

// AdviceThreshold returns the score from which a category gets advice
func (q *Questionnaire) AdviceThreshold() int { return q.threshold }

// Categories returns a copy of the categories in definition order
func (q *Questionnaire) Categories() []Category {
	result := make([]Category, len(q.categories))
	for i, cat := range q.categories {
		result[i] = Category{
			ID:        cat.ID,
			Label:     cat.Label,
			Questions: slices.Clone(cat.Questions),
			Advice:    slices.Clone(cat.Advice),
		}
	}
	return result
}

// Category returns the category with the given ID
func (q *Questionnaire) Category(id types.CategoryID) (Category, bool) {
	for _, cat := range q.Categories() {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// HasQuestion reports whether id belongs to the questionnaire
func (q *Questionnaire) HasQuestion(id types.QuestionID) bool {
	_, ok := q.questions[id]
	return ok
}

// QuestionCount returns the number of questions over all categories
func (q *Questionnaire) QuestionCount() int {
	return len(q.questions)
}
