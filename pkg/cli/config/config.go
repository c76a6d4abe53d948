package config

import (
	_ "embed"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

//go:embed questionnaire.toml
var questionnaireTOML []byte

// Questionnaire is the TOML representation of the stress check definition
type Questionnaire struct {
	Title           string     `toml:"title"`
	Caption         string     `toml:"caption"`
	AdviceThreshold int        `toml:"advice_threshold"`
	Categories      []Category `toml:"category"`
}

// Category represents a stress category definition
type Category struct {
	ID        string     `toml:"id"`
	Label     string     `toml:"label"`
	Advice    []string   `toml:"advice"`
	Questions []Question `toml:"question"`
}

// Question represents one rated statement
type Question struct {
	ID   string `toml:"id"`
	Text string `toml:"text"`
}

// ParseQuestionnaire decodes a TOML definition and validates it
func ParseQuestionnaire(data []byte) (*model.Questionnaire, error) {
	var cfg Questionnaire
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error())
	}

	q, err := cfg.ToDomain()
	if err != nil {
		return nil, goerr.Wrap(err, "questionnaire validation failed")
	}
	return q, nil
}

// ToDomain converts the TOML definition into the domain questionnaire
func (x *Questionnaire) ToDomain() (*model.Questionnaire, error) {
	if x.AdviceThreshold <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "advice_threshold must be positive",
			goerr.V("advice_threshold", x.AdviceThreshold))
	}

	categories := make([]model.Category, len(x.Categories))
	for i, cat := range x.Categories {
		questions := make([]model.Question, len(cat.Questions))
		for j, q := range cat.Questions {
			questions[j] = model.Question{
				ID:   types.QuestionID(q.ID),
				Text: q.Text,
			}
		}
		categories[i] = model.Category{
			ID:        types.CategoryID(cat.ID),
			Label:     cat.Label,
			Questions: questions,
			Advice:    cat.Advice,
		}
	}

	return model.NewQuestionnaire(x.Title, categories,
		model.WithCaption(x.Caption),
		model.WithAdviceThreshold(x.AdviceThreshold),
	)
}

var loadQuestionnaire = sync.OnceValues(func() (*model.Questionnaire, error) {
	return ParseQuestionnaire(questionnaireTOML)
})

// LoadQuestionnaire returns the built-in stress check definition. It is
// parsed once per process; the result is immutable and safe to share.
func LoadQuestionnaire() (*model.Questionnaire, error) {
	return loadQuestionnaire()
}
