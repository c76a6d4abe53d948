package report

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/service/font"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
)

// ErrCompose is returned when the PDF document cannot be produced
var ErrCompose = goerr.New("failed to compose report")

const (
	fontFamily = "report"
	chartName  = "chart"

	titleFontSize  = 14
	bodyFontSize   = 12
	adviceFontSize = 11

	lineHeight       = 10
	adviceLineHeight = 8
	chartWidth       = 150
	adviceSpacing    = 3
	adviceTopSpacing = 5
)

// Composer renders report documents to A4 PDF
type Composer struct {
	now      func() time.Time
	compress bool
}

// ComposerOption configures Composer
type ComposerOption func(*Composer)

// WithClock sets the clock used for PDF creation dates
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		c.now = now
	}
}

// WithCompression switches stream compression of the PDF. It is on by default.
func WithCompression(compress bool) ComposerOption {
	return func(c *Composer) {
		c.compress = compress
	}
}

// NewComposer returns a PDF composer
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		now:      time.Now,
		compress: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose lays out and renders the report
func (c *Composer) Compose(ctx context.Context, f *model.Font, q *model.Questionnaire, name string, scores model.Scores, chart []byte) ([]byte, error) {
	return c.Render(ctx, f, Layout(q, name, scores), chart)
}

// Render writes doc with f and the PNG chart embedded after the score lines.
// f must have glyphs for every fixed text of doc.
func (c *Composer) Render(ctx context.Context, f *model.Font, doc *Document, chart []byte) ([]byte, error) {
	if f == nil {
		return nil, goerr.Wrap(ErrCompose, "font is not loaded")
	}
	if err := font.Covers(f, doc.FixedTexts()...); err != nil {
		return nil, goerr.Wrap(err, "report font cannot render the document")
	}
	if len(chart) == 0 {
		return nil, goerr.Wrap(ErrCompose, "chart image is empty")
	}

	now := c.now()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(c.compress)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(doc.Title, true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", f.Data)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "", titleFontSize)
	pdf.CellFormat(0, lineHeight, doc.Title, "", 1, "", false, 0, "")

	pdf.SetFont(fontFamily, "", bodyFontSize)
	if doc.HasRespondent() {
		pdf.CellFormat(0, lineHeight, doc.Respondent, "", 1, "", false, 0, "")
	}
	for _, s := range doc.ScoreLines {
		pdf.CellFormat(0, lineHeight, s, "", 1, "", false, 0, "")
	}

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(chartName, opt, bytes.NewReader(chart))
	pageWidth, _ := pdf.GetPageSize()
	pdf.ImageOptions(chartName, (pageWidth-chartWidth)/2, -1, chartWidth, 0, true, opt, 0, "")

	pdf.SetFont(fontFamily, "", adviceFontSize)
	pdf.Ln(adviceTopSpacing)
	for _, adv := range doc.Advisories {
		pdf.MultiCell(0, adviceLineHeight, adv.Header, "", "L", false)
		for _, bullet := range adv.Bullets {
			pdf.MultiCell(0, adviceLineHeight, bullet, "", "L", false)
		}
		pdf.Ln(adviceSpacing)
	}

	if pdf.Err() {
		return nil, goerr.Wrap(ErrCompose, pdf.Error().Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, goerr.Wrap(ErrCompose, err.Error())
	}

	logging.From(ctx).Debug("report composed",
		slog.Int("pages", pdf.PageCount()),
		slog.Int("advisories", len(doc.Advisories)),
		slog.Int("size", buf.Len()),
	)
	return buf.Bytes(), nil
}
