package interfaces

import (
	"context"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
)

// ChartRenderer draws category scores as a radar chart and returns PNG bytes
type ChartRenderer interface {
	Render(ctx context.Context, f *model.Font, scores model.Scores) ([]byte, error)
}

// ReportComposer lays out the personal report and returns PDF bytes. The chart
// is passed as PNG bytes and embedded without touching the filesystem.
type ReportComposer interface {
	Compose(ctx context.Context, f *model.Font, q *model.Questionnaire, name string, scores model.Scores, chart []byte) ([]byte, error)
}

// FontSource provides the TrueType font for charts and reports. It is
// consulted once per generation attempt.
type FontSource interface {
	Load(ctx context.Context) (*model.Font, error)
}
