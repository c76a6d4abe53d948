package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for report generation. Each aborts the current attempt
// only; nothing is kept between attempts. Returned errors wrap the underlying
// cause and match these with errors.Is through their IDs.
var (
	// ErrInvalidSubmission is returned for answers that do not match the
	// questionnaire (unknown question, rating out of range)
	ErrInvalidSubmission = goerr.New("invalid submission", goerr.ID("invalid_submission"))

	// ErrResourceLoad is returned when the font cannot be loaded
	ErrResourceLoad = goerr.New("failed to load report resource", goerr.ID("resource_load"))

	// ErrRendering is returned when the chart or the document cannot be
	// produced
	ErrRendering = goerr.New("failed to render report", goerr.ID("rendering"))
)

// Context keys for error values
const (
	ReportIDKey = "report_id"
	StageKey    = "stage"
)
