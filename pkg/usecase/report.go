package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/interfaces"
	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/service/font"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
)

// ReportUseCase turns a submission into a personal report
type ReportUseCase struct {
	questionnaire *model.Questionnaire
	fonts         interfaces.FontSource
	chart         interfaces.ChartRenderer
	composer      interfaces.ReportComposer
}

// NewReportUseCase creates a new ReportUseCase
func NewReportUseCase(q *model.Questionnaire, fonts interfaces.FontSource, chart interfaces.ChartRenderer, composer interfaces.ReportComposer) *ReportUseCase {
	return &ReportUseCase{
		questionnaire: q,
		fonts:         fonts,
		chart:         chart,
		composer:      composer,
	}
}

// Generate scores the submission, loads the font, renders the radar chart and
// composes the PDF. Every call recomputes everything from sub and reads the
// font again; on error no report is returned.
func (uc *ReportUseCase) Generate(ctx context.Context, sub model.Submission) (*model.Report, error) {
	id := model.NewReportID()
	logger := logging.From(ctx).With(slog.String(ReportIDKey, id.String()))
	ctx = logging.With(ctx, logger)
	start := time.Now()

	scores, err := uc.questionnaire.Score(sub.Answers)
	if err != nil {
		return nil, ErrInvalidSubmission.Wrap(err, goerr.V(ReportIDKey, id))
	}

	f, err := uc.fonts.Load(ctx)
	if err != nil {
		return nil, classify(err, "font", id)
	}

	chart, err := uc.chart.Render(ctx, f, scores)
	if err != nil {
		return nil, classify(err, "chart", id)
	}

	pdf, err := uc.composer.Compose(ctx, f, uc.questionnaire, sub.Name, scores, chart)
	if err != nil {
		return nil, classify(err, "compose", id)
	}

	logger.Info("report generated",
		slog.Any("submission", sub),
		slog.Any("scores", scores.Values()),
		slog.Int("size", len(pdf)),
		slog.Duration("duration", time.Since(start)),
	)

	return &model.Report{
		ID:     id,
		Scores: scores,
		Chart:  chart,
		PDF:    pdf,
	}, nil
}

// classify wraps err with the failure category. Font errors, including a
// font lacking glyphs, are resource failures.
func classify(err error, stage string, id model.ReportID) error {
	if errors.Is(err, font.ErrNotFound) || errors.Is(err, font.ErrInvalid) {
		return ErrResourceLoad.Wrap(err, goerr.V(ReportIDKey, id), goerr.V(StageKey, stage))
	}
	return ErrRendering.Wrap(err, goerr.V(ReportIDKey, id), goerr.V(StageKey, stage))
}
