package usecase

import (
	"github.com/secmon-lab/stresscheck/pkg/domain/interfaces"
	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/service/chart"
	"github.com/secmon-lab/stresscheck/pkg/service/report"
)

type UseCases struct {
	questionnaire *model.Questionnaire
	fonts         interfaces.FontSource
	chart         interfaces.ChartRenderer
	composer      interfaces.ReportComposer
	Report        *ReportUseCase
}

type Option func(*UseCases)

// WithChartRenderer overrides the default radar chart renderer
func WithChartRenderer(r interfaces.ChartRenderer) Option {
	return func(uc *UseCases) {
		uc.chart = r
	}
}

// WithReportComposer overrides the default PDF composer
func WithReportComposer(c interfaces.ReportComposer) Option {
	return func(uc *UseCases) {
		uc.composer = c
	}
}

// New builds use cases. fonts is loaded once per report and shared by the
// chart renderer and the composer.
func New(q *model.Questionnaire, fonts interfaces.FontSource, opts ...Option) *UseCases {
	uc := &UseCases{
		questionnaire: q,
		fonts:         fonts,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.chart == nil {
		uc.chart = chart.NewRadar()
	}
	if uc.composer == nil {
		uc.composer = report.NewComposer()
	}

	uc.Report = NewReportUseCase(q, fonts, uc.chart, uc.composer)

	return uc
}

// Questionnaire returns the stress check definition
func (uc *UseCases) Questionnaire() *model.Questionnaire {
	return uc.questionnaire
}
