package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/stresscheck/pkg/cli/config"
	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
	"github.com/secmon-lab/stresscheck/pkg/service/font"
	"github.com/secmon-lab/stresscheck/pkg/service/font/fonttest"
	"github.com/secmon-lab/stresscheck/pkg/usecase"
)

type chartFunc func(ctx context.Context, scores model.Scores) ([]byte, error)

func (f chartFunc) Render(ctx context.Context, _ *model.Font, scores model.Scores) ([]byte, error) {
	return f(ctx, scores)
}

type composerFunc func(ctx context.Context, q *model.Questionnaire, name string, scores model.Scores, chart []byte) ([]byte, error)

func (f composerFunc) Compose(ctx context.Context, _ *model.Font, q *model.Questionnaire, name string, scores model.Scores, chart []byte) ([]byte, error) {
	return f(ctx, q, name, scores, chart)
}

type countingFonts struct {
	data  []byte
	loads int
}

func (x *countingFonts) Load(ctx context.Context) (*model.Font, error) {
	x.loads++
	return font.NewStatic(x.data).Load(ctx)
}

func loadQuestionnaire(t *testing.T) *model.Questionnaire {
	t.Helper()
	q, err := config.LoadQuestionnaire()
	gt.NoError(t, err).Required()
	return q
}

func uniform(q *model.Questionnaire, r types.Rating) model.Answers {
	answers := model.Answers{}
	for _, cat := range q.Categories() {
		for _, question := range cat.Questions {
			answers[question.ID] = r
		}
	}
	return answers
}

func TestReportUseCase_Generate(t *testing.T) {
	ctx := context.Background()
	q := loadQuestionnaire(t)
	uc := usecase.New(q, font.NewStatic(fonttest.Boxes))

	t.Run("all ratings 1", func(t *testing.T) {
		rpt, err := uc.Report.Generate(ctx, model.NewSubmission("", uniform(q, 1)))
		gt.NoError(t, err).Required()
		gt.Value(t, rpt.Scores.Values()).Equal([]int{3, 3, 3, 3})
		gt.Bool(t, bytes.HasPrefix(rpt.PDF, []byte("%PDF-"))).True()
		gt.Bool(t, bytes.HasPrefix(rpt.Chart, []byte("\x89PNG"))).True()
		gt.Value(t, rpt.FileName()).Equal("stress_report.pdf")
		gt.Value(t, rpt.ContentType()).Equal("application/pdf")
		gt.String(t, rpt.ID.String()).NotEqual("")
	})

	t.Run("all ratings 5 with name", func(t *testing.T) {
		rpt, err := uc.Report.Generate(ctx, model.NewSubmission("Taro", uniform(q, 5)))
		gt.NoError(t, err).Required()
		gt.Value(t, rpt.Scores.Values()).Equal([]int{15, 15, 15, 15})
		gt.Bool(t, bytes.HasPrefix(rpt.PDF, []byte("%PDF-"))).True()
	})

	t.Run("each generation gets a new ID", func(t *testing.T) {
		sub := model.NewSubmission("", nil)
		a, err := uc.Report.Generate(ctx, sub)
		gt.NoError(t, err).Required()
		b, err := uc.Report.Generate(ctx, sub)
		gt.NoError(t, err).Required()
		gt.Value(t, a.ID).NotEqual(b.ID)
		gt.Value(t, a.Scores.Values()).Equal(b.Scores.Values())
	})

	t.Run("invalid rating", func(t *testing.T) {
		_, err := uc.Report.Generate(ctx, model.NewSubmission("", model.Answers{"a-1": 9}))
		gt.Error(t, err).Is(usecase.ErrInvalidSubmission)
		gt.Error(t, err).Is(model.ErrInvalidRating)
		gt.Value(t, goerr.Values(err)[model.QuestionIDKey]).Equal(types.QuestionID("a-1"))
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := uc.Report.Generate(ctx, model.NewSubmission("", model.Answers{"z-9": 3}))
		gt.Error(t, err).Is(usecase.ErrInvalidSubmission)
		gt.Error(t, err).Is(model.ErrUnknownQuestion)
	})

	t.Run("font is loaded once per generation", func(t *testing.T) {
		fonts := &countingFonts{data: fonttest.Boxes}
		counted := usecase.New(q, fonts)
		for range 2 {
			_, err := counted.Report.Generate(ctx, model.NewSubmission("", nil))
			gt.NoError(t, err).Required()
		}
		gt.Value(t, fonts.loads).Equal(2)
	})
}

func TestReportUseCase_Generate_Handoff(t *testing.T) {
	ctx := context.Background()
	q := loadQuestionnaire(t)
	png := []byte("\x89PNG fake")

	var gotName string
	var gotChart []byte
	var gotScores model.Scores
	uc := usecase.New(q, font.NewStatic(fonttest.Boxes),
		usecase.WithChartRenderer(chartFunc(func(ctx context.Context, scores model.Scores) ([]byte, error) {
			return png, nil
		})),
		usecase.WithReportComposer(composerFunc(func(ctx context.Context, _ *model.Questionnaire, name string, scores model.Scores, chart []byte) ([]byte, error) {
			gotName = name
			gotChart = chart
			gotScores = scores
			return []byte("%PDF-1.3 fake"), nil
		})),
	)

	answers := uniform(q, 2)
	answers["d-1"] = 5
	rpt, err := uc.Report.Generate(ctx, model.NewSubmission("山田", answers))
	gt.NoError(t, err).Required()

	gt.Value(t, gotName).Equal("山田")
	gt.Value(t, gotChart).Equal(png)
	gt.Value(t, gotScores.Values()).Equal([]int{6, 6, 6, 9})
	gt.Value(t, rpt.PDF).Equal([]byte("%PDF-1.3 fake"))
}

func TestReportUseCase_Generate_Failures(t *testing.T) {
	ctx := context.Background()
	q := loadQuestionnaire(t)
	composed := false
	composer := composerFunc(func(ctx context.Context, _ *model.Questionnaire, _ string, _ model.Scores, _ []byte) ([]byte, error) {
		composed = true
		return []byte("%PDF-"), nil
	})

	t.Run("missing font is a resource load failure", func(t *testing.T) {
		uc := usecase.New(q, font.NewFile("/nonexistent/ipaexg.ttf"))
		rpt, err := uc.Report.Generate(ctx, model.NewSubmission("", nil))
		gt.Error(t, err).Is(usecase.ErrResourceLoad)
		gt.Error(t, err).Is(font.ErrNotFound)
		gt.Value(t, rpt).Nil()

		values := goerr.Values(err)
		gt.Value(t, values["path"]).Equal("/nonexistent/ipaexg.ttf")
		gt.Value(t, values[usecase.StageKey]).Equal("font")
	})

	t.Run("font without Japanese glyphs is a resource load failure", func(t *testing.T) {
		for _, uc := range []*usecase.UseCases{
			usecase.New(q, font.NewStatic(fonttest.LatinOnly)),
			usecase.New(q, font.NewStatic(fonttest.LatinOnly), usecase.WithChartRenderer(chartFunc(func(ctx context.Context, scores model.Scores) ([]byte, error) {
				return []byte("\x89PNG fake"), nil
			}))),
		} {
			rpt, err := uc.Report.Generate(ctx, model.NewSubmission("Taro", uniform(q, 5)))
			gt.Error(t, err).Is(usecase.ErrResourceLoad)
			gt.Error(t, err).Is(font.ErrInvalid)
			gt.Value(t, rpt).Nil()
		}
	})

	t.Run("chart failure stops before composing", func(t *testing.T) {
		composed = false
		uc := usecase.New(q, font.NewStatic(fonttest.Boxes),
			usecase.WithChartRenderer(chartFunc(func(ctx context.Context, scores model.Scores) ([]byte, error) {
				return nil, goerr.New("degenerate input")
			})),
			usecase.WithReportComposer(composer),
		)
		rpt, err := uc.Report.Generate(ctx, model.NewSubmission("", nil))
		gt.Error(t, err).Is(usecase.ErrRendering)
		gt.String(t, err.Error()).Contains("degenerate input")
		gt.Value(t, rpt).Nil()
		gt.Bool(t, composed).False()
	})

	t.Run("composer failure", func(t *testing.T) {
		uc := usecase.New(q, font.NewStatic(fonttest.Boxes),
			usecase.WithReportComposer(composerFunc(func(ctx context.Context, _ *model.Questionnaire, _ string, _ model.Scores, _ []byte) ([]byte, error) {
				return nil, goerr.New("broken writer")
			})),
		)
		_, err := uc.Report.Generate(ctx, model.NewSubmission("", nil))
		gt.Error(t, err).Is(usecase.ErrRendering)
	})

	t.Run("font removed for composer only", func(t *testing.T) {
		uc := usecase.New(q, font.NewStatic(fonttest.Boxes),
			usecase.WithReportComposer(composerFunc(func(ctx context.Context, _ *model.Questionnaire, _ string, _ model.Scores, _ []byte) ([]byte, error) {
				return nil, goerr.Wrap(font.ErrNotFound, "font path is not configured")
			})),
		)
		_, err := uc.Report.Generate(ctx, model.NewSubmission("", nil))
		gt.Error(t, err).Is(usecase.ErrResourceLoad)
	})
}

func TestUseCases_Questionnaire(t *testing.T) {
	q := loadQuestionnaire(t)
	uc := usecase.New(q, font.NewStatic(fonttest.Boxes))
	gt.Value(t, uc.Questionnaire()).Equal(q)
}
