package report

import (
	"strconv"
	"strings"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

// Advisory is the advice block of a category whose score reached the
// threshold
type Advisory struct {
	CategoryID types.CategoryID
	Header     string
	Bullets    []string
}

// Document is the content of a personal report in reading order. The chart
// image sits between ScoreLines and Advisories.
type Document struct {
	Title      string
	Respondent string
	ScoreLines []string
	Advisories []Advisory
}

const respondentPrefix = "対象者："

// RespondentLine returns the line naming the respondent, or "" when no name
// was given
func RespondentLine(name string) string {
	if name == "" {
		return ""
	}
	return respondentPrefix + name
}

// ScoreLine formats a category score, e.g. "A：仕事量・スピード：12点"
func ScoreLine(label string, score int) string {
	return label + "：" + strconv.Itoa(score) + "点"
}

// AdvisoryHeader formats the heading of an advice block
func AdvisoryHeader(label string) string {
	return "● " + label + " に関するアドバイス："
}

// Bullet formats one recommendation
func Bullet(text string) string {
	return "- " + text
}

// Layout decides the report content for the given scores. Score lines and
// advice follow the questionnaire definition order carried by scores.
func Layout(q *model.Questionnaire, name string, scores model.Scores) *Document {
	doc := &Document{
		Title:      q.Title(),
		Respondent: RespondentLine(name),
	}

	for _, cs := range scores {
		doc.ScoreLines = append(doc.ScoreLines, ScoreLine(cs.Category.Label, cs.Score))
	}

	for _, cs := range scores {
		if !q.NeedsAdvice(cs.Score) {
			continue
		}
		adv := Advisory{
			CategoryID: cs.Category.ID,
			Header:     AdvisoryHeader(cs.Category.Label),
		}
		for _, text := range cs.Category.Advice {
			adv.Bullets = append(adv.Bullets, Bullet(text))
		}
		doc.Advisories = append(doc.Advisories, adv)
	}

	return doc
}

// HasRespondent reports whether the report names the respondent
func (d *Document) HasRespondent() bool {
	return d.Respondent != ""
}

// Lines returns the text lines in reading order, without the chart
func (d *Document) Lines() []string {
	var lines []string
	lines = append(lines, d.Title)
	if d.HasRespondent() {
		lines = append(lines, d.Respondent)
	}
	lines = append(lines, d.ScoreLines...)
	for _, adv := range d.Advisories {
		lines = append(lines, adv.Header)
		lines = append(lines, adv.Bullets...)
	}
	return lines
}

// FixedTexts returns the text the font has to cover. The respondent name is
// user input and is left out; only its prefix is included.
func (d *Document) FixedTexts() []string {
	texts := []string{d.Title}
	if d.HasRespondent() {
		texts = append(texts, respondentPrefix)
	}
	texts = append(texts, d.ScoreLines...)
	for _, adv := range d.Advisories {
		texts = append(texts, adv.Header)
		texts = append(texts, adv.Bullets...)
	}
	return texts
}

// String renders the document as plain text. The chart is shown as a
// "[chart]" placeholder line.
func (d *Document) String() string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(d.Title)
	if d.HasRespondent() {
		line(d.Respondent)
	}
	for _, s := range d.ScoreLines {
		line(s)
	}
	line("[chart]")
	for _, adv := range d.Advisories {
		line("")
		line(adv.Header)
		for _, bullet := range adv.Bullets {
			line(bullet)
		}
	}
	return b.String()
}
