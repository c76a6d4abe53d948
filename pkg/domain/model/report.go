package model

import (
	"github.com/google/uuid"
)

const (
	// ReportFileName is the download file name of the report artifact
	ReportFileName = "stress_report.pdf"
	// ReportContentType is the media type of the report artifact
	ReportContentType = "application/pdf"
)

// ReportID identifies a generated report in logs and response headers
type ReportID string

// NewReportID returns a new time ordered report ID
func NewReportID() ReportID {
	return ReportID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of ReportID
func (id ReportID) String() string {
	return string(id)
}

// Report is a generated personal report. It only lives in memory for the
// duration of the response that offers it.
type Report struct {
	ID     ReportID
	Scores Scores
	Chart  []byte
	PDF    []byte
}

// FileName returns the download file name
func (r *Report) FileName() string {
	return ReportFileName
}

// ContentType returns the media type of PDF
func (r *Report) ContentType() string {
	return ReportContentType
}
