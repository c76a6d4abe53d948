package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

// Answers is the TOML representation of an offline submission:
//
//	name = "山田太郎"
//
//	[answers]
//	a-1 = 4
//	b-3 = 2
//
// Questions without an entry keep the default rating.
type Answers struct {
	Name    string         `toml:"name"`
	Answers map[string]int `toml:"answers"`
}

// ToSubmission converts the file content into a submission
func (x *Answers) ToSubmission() model.Submission {
	answers := make(model.Answers, len(x.Answers))
	for id, rating := range x.Answers {
		answers[types.QuestionID(id)] = types.Rating(rating)
	}
	return model.NewSubmission(x.Name, answers)
}

// LoadAnswers reads an answers file. An empty path yields a submission with
// no name and default ratings.
func LoadAnswers(path string) (model.Submission, error) {
	if path == "" {
		return model.NewSubmission("", nil), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Submission{}, goerr.Wrap(ErrConfigNotFound, "answers file not found", goerr.V(ConfigPathKey, path))
		}
		return model.Submission{}, goerr.Wrap(err, "failed to read answers file", goerr.V(ConfigPathKey, path))
	}

	var cfg Answers
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return model.Submission{}, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}
	return cfg.ToSubmission(), nil
}
