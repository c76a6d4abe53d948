package http

import (
	"bytes"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
	"github.com/secmon-lab/stresscheck/pkg/usecase"
	"github.com/secmon-lab/stresscheck/pkg/utils/errutil"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
	"github.com/secmon-lab/stresscheck/pkg/utils/safe"
)

const nameField = "name"

// Messages shown in place of the download link when generation fails
const (
	msgInvalidInput   = "入力内容を確認してください。評価は1～5の整数で指定してください。"
	msgResourceFailed = "レポート用のフォントを読み込めませんでした。管理者に連絡してください。"
	msgRenderFailed   = "レポートの作成に失敗しました。もう一度お試しください。"
)

type questionView struct {
	ID    types.QuestionID
	Text  string
	Value int
}

type categoryView struct {
	Label     string
	Questions []questionView
}

type downloadView struct {
	Href        template.URL
	FileName    string
	ContentType string
	ReportID    string
}

type pageData struct {
	Name       string
	Caption    string
	Min        int
	Max        int
	Categories []categoryView
	Error      string
	Download   *downloadView
}

func (s *Server) newPageData(name string, answers model.Answers) *pageData {
	q := s.uc.Questionnaire()
	data := &pageData{
		Name:    name,
		Caption: q.Caption(),
		Min:     types.MinRating.Int(),
		Max:     types.MaxRating.Int(),
	}

	for _, cat := range q.Categories() {
		view := categoryView{Label: cat.Label}
		for _, question := range cat.Questions {
			value, ok := answers[question.ID]
			if !ok || value.Validate() != nil {
				value = types.DefaultRating
			}
			view.Questions = append(view.Questions, questionView{
				ID:    question.ID,
				Text:  question.Text,
				Value: value.Int(),
			})
		}
		data.Categories = append(data.Categories, view)
	}
	return data
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to render page"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, buf.Bytes())
}

// handleForm shows the questionnaire with default ratings
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.newPageData("", nil))
}

// handleSubmit generates a report from the submitted form and shows the form
// again with the submitted values and a download link for the PDF
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		logging.From(ctx).Warn("invalid form request", "error", err.Error())
		data := s.newPageData("", nil)
		data.Error = msgInvalidInput
		s.render(w, r, http.StatusBadRequest, data)
		return
	}

	name := r.PostFormValue(nameField)
	answers, err := s.parseFormAnswers(r)
	if err != nil {
		logging.From(ctx).Warn("invalid rating in form", "error", err.Error())
		data := s.newPageData(name, answers)
		data.Error = msgInvalidInput
		s.render(w, r, http.StatusBadRequest, data)
		return
	}

	data := s.newPageData(name, answers)
	rpt, err := s.uc.Report.Generate(ctx, model.NewSubmission(name, answers))
	if err != nil {
		status, msg := failureOf(err)
		if status >= http.StatusInternalServerError {
			errutil.Handle(ctx, err, "failed to generate report")
		} else {
			logging.From(ctx).Warn("rejected submission", "error", err.Error())
		}
		data.Error = msg
		s.render(w, r, status, data)
		return
	}

	data.Download = &downloadView{
		// #nosec G203 - data URL built from our own PDF bytes
		Href:        template.URL("data:" + rpt.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(rpt.PDF)),
		FileName:    rpt.FileName(),
		ContentType: rpt.ContentType(),
		ReportID:    rpt.ID.String(),
	}
	w.Header().Set("X-Report-ID", rpt.ID.String())
	s.render(w, r, http.StatusOK, data)
}

// parseFormAnswers reads one rating per question. Missing fields keep the
// default rating; fields that do not belong to the questionnaire are ignored.
// Valid ratings are returned even on error so the form can be shown again.
func (s *Server) parseFormAnswers(r *http.Request) (model.Answers, error) {
	answers := model.Answers{}
	var firstErr error

	for _, cat := range s.uc.Questionnaire().Categories() {
		for _, question := range cat.Questions {
			raw, ok := r.PostForm[question.ID.String()]
			if !ok || len(raw) == 0 || raw[0] == "" {
				continue
			}
			rating, err := types.ParseRating(raw[0])
			if err != nil {
				if firstErr == nil {
					firstErr = goerr.Wrap(err, "invalid form rating", goerr.V(model.QuestionIDKey, question.ID))
				}
				continue
			}
			answers[question.ID] = rating
		}
	}

	return answers, firstErr
}

func failureOf(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidSubmission):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, usecase.ErrResourceLoad):
		return http.StatusInternalServerError, msgResourceFailed
	default:
		return http.StatusInternalServerError, msgRenderFailed
	}
}
