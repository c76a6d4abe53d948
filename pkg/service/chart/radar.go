package chart

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/golang/freetype/truetype"
	"github.com/m-mizutani/goerr/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/service/font"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
)

// ErrRender is returned when a chart cannot be drawn from the given scores
var ErrRender = goerr.New("failed to render chart")

const (
	defaultWidth    = 600
	defaultHeight   = 440
	defaultRadius   = 130
	defaultScaleMax = 15
	gridStep        = 3
	labelOffset     = 14
	labelFontSize   = 10.0
	tickFontSize    = 7.0
)

var (
	seriesColor = drawing.ColorFromHex("1f77b4")
	gridColor   = drawing.ColorFromHex("cccccc")
	tickColor   = drawing.ColorFromHex("888888")
	labelColor  = drawing.ColorFromHex("333333")
)

// Point is a vertex of the radar polygon in canvas coordinates
type Point struct {
	X int
	Y int
}

// Radar renders category scores as a filled polar polygon
type Radar struct {
	width    int
	height   int
	radius   int
	scaleMax int
}

// Option configures Radar
type Option func(*Radar)

// WithSize sets canvas size in pixels and the radius of the outermost ring
func WithSize(width, height, radius int) Option {
	return func(r *Radar) {
		r.width = width
		r.height = height
		r.radius = radius
	}
}

// WithScaleMax sets the score drawn on the outermost ring
func WithScaleMax(score int) Option {
	return func(r *Radar) {
		r.scaleMax = score
	}
}

// NewRadar returns a radar chart renderer
func NewRadar(opts ...Option) *Radar {
	r := &Radar{
		width:    defaultWidth,
		height:   defaultHeight,
		radius:   defaultRadius,
		scaleMax: defaultScaleMax,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Angle returns the angle in radians of the i-th of n axes. The first axis
// points east and the rest follow counter-clockwise.
func Angle(i, n int) float64 {
	return float64(i) / float64(n) * 2 * math.Pi
}

// Polygon returns the vertices for values around center, closed by repeating
// the first vertex.
func Polygon(values []int, center Point, radius int, scaleMax int) []Point {
	n := len(values)
	points := make([]Point, 0, n+1)
	for i, v := range values {
		points = append(points, polar(center, float64(radius)*float64(v)/float64(scaleMax), Angle(i, n)))
	}
	if n > 0 {
		points = append(points, points[0])
	}
	return points
}

func polar(center Point, r, theta float64) Point {
	return Point{
		X: center.X + int(math.Round(r*math.Cos(theta))),
		Y: center.Y - int(math.Round(r*math.Sin(theta))),
	}
}

// Render draws the chart with f and returns PNG bytes. f must have glyphs for
// every category label.
func (x *Radar) Render(ctx context.Context, f *model.Font, scores model.Scores) ([]byte, error) {
	if len(scores) == 0 {
		return nil, goerr.Wrap(ErrRender, "no categories to draw")
	}
	if x.scaleMax <= 0 || x.radius <= 0 {
		return nil, goerr.Wrap(ErrRender, "invalid chart scale",
			goerr.V("scale_max", x.scaleMax),
			goerr.V("radius", x.radius))
	}
	if f == nil || f.TrueType == nil {
		return nil, goerr.Wrap(ErrRender, "font is not loaded")
	}
	values := scores.Values()
	for i, v := range values {
		if v < 0 {
			return nil, goerr.Wrap(ErrRender, "negative score",
				goerr.V(model.CategoryIDKey, scores[i].Category.ID),
				goerr.V("score", v))
		}
	}

	r, err := gochart.PNG(x.width, x.height)
	if err != nil {
		return nil, goerr.Wrap(ErrRender, err.Error())
	}
	r.SetDPI(gochart.DefaultDPI)

	center := Point{X: x.width / 2, Y: x.height / 2}
	scaleMax := x.scaleMax
	for _, v := range values {
		scaleMax = max(scaleMax, v)
	}

	labels := scores.Labels()
	if err := font.Covers(f, slices.Concat(labels, tickLabels(scaleMax))...); err != nil {
		return nil, goerr.Wrap(err, "chart font cannot render labels")
	}
	ttf := f.TrueType

	x.drawBackground(r)
	x.drawGrid(r, center, len(values), scaleMax)
	x.drawTicks(r, ttf, center, len(values), scaleMax)
	x.drawSeries(r, Polygon(values, center, x.radius, scaleMax))
	x.drawLabels(r, ttf, center, labels)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, goerr.Wrap(ErrRender, err.Error())
	}

	logging.From(ctx).Debug("chart rendered", slog.Int("categories", len(values)), slog.Int("size", buf.Len()))
	return buf.Bytes(), nil
}

func (x *Radar) drawBackground(r gochart.Renderer) {
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(x.width, 0)
	r.LineTo(x.width, x.height)
	r.LineTo(0, x.height)
	r.Close()
	r.Fill()
}

func (x *Radar) drawGrid(r gochart.Renderer, center Point, n, scaleMax int) {
	r.SetStrokeColor(gridColor)
	r.SetStrokeWidth(1)

	for level := gridStep; level <= scaleMax; level += gridStep {
		ring := make([]int, n)
		for i := range ring {
			ring[i] = level
		}
		strokePath(r, Polygon(ring, center, x.radius, scaleMax))
	}

	for i := range n {
		end := polar(center, float64(x.radius), Angle(i, n))
		r.MoveTo(center.X, center.Y)
		r.LineTo(end.X, end.Y)
		r.Stroke()
	}
}

func (x *Radar) drawTicks(r gochart.Renderer, ttf *truetype.Font, center Point, n, scaleMax int) {
	r.SetFont(ttf)
	r.SetFontSize(tickFontSize)
	r.SetFontColor(tickColor)

	// between the first two axes so that tick values never cover the series
	theta := Angle(1, n) / 2
	if n == 1 {
		theta = math.Pi / 4
	}
	for i, text := range tickLabels(scaleMax) {
		level := (i + 1) * gridStep
		p := polar(center, float64(x.radius)*float64(level)/float64(scaleMax), theta)
		r.Text(text, p.X+2, p.Y-2)
	}
}

func (x *Radar) drawSeries(r gochart.Renderer, points []Point) {
	r.SetFillColor(seriesColor.WithAlpha(64))
	r.SetStrokeColor(seriesColor)
	r.SetStrokeWidth(2)

	r.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.LineTo(p.X, p.Y)
	}
	r.Close()
	r.FillStroke()
}

func (x *Radar) drawLabels(r gochart.Renderer, ttf *truetype.Font, center Point, labels []string) {
	r.SetFont(ttf)
	r.SetFontSize(labelFontSize)
	r.SetFontColor(labelColor)

	n := len(labels)
	for i, label := range labels {
		theta := Angle(i, n)
		anchor := polar(center, float64(x.radius+labelOffset), theta)
		box := r.MeasureText(label)
		w, h := box.Width(), box.Height()

		tx := anchor.X - w/2
		switch cos := math.Cos(theta); {
		case cos > 0.1:
			tx = anchor.X
		case cos < -0.1:
			tx = anchor.X - w
		}
		ty := anchor.Y + h/2
		switch sin := math.Sin(theta); {
		case sin > 0.1:
			ty = anchor.Y
		case sin < -0.1:
			ty = anchor.Y + h
		}

		r.Text(label, tx, ty)
	}
}

func tickLabels(scaleMax int) []string {
	var labels []string
	for level := gridStep; level <= scaleMax; level += gridStep {
		labels = append(labels, strconv.Itoa(level))
	}
	return labels
}

func strokePath(r gochart.Renderer, points []Point) {
	if len(points) == 0 {
		return
	}
	r.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.LineTo(p.X, p.Y)
	}
	r.Stroke()
}
