package http

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
	"github.com/secmon-lab/stresscheck/pkg/utils/errutil"
	"github.com/secmon-lab/stresscheck/pkg/utils/safe"
)

const maxRequestBody = 64 << 10

// handleQuestionnaire serves the questionnaire definition as JSON
func (s *Server) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	type question struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	type category struct {
		ID        string     `json:"id"`
		Label     string     `json:"label"`
		Questions []question `json:"questions"`
	}
	type response struct {
		Title           string     `json:"title"`
		Caption         string     `json:"caption"`
		MinRating       int        `json:"min_rating"`
		MaxRating       int        `json:"max_rating"`
		DefaultRating   int        `json:"default_rating"`
		AdviceThreshold int        `json:"advice_threshold"`
		Categories      []category `json:"categories"`
	}

	q := s.uc.Questionnaire()
	resp := response{
		Title:           q.Title(),
		Caption:         q.Caption(),
		MinRating:       types.MinRating.Int(),
		MaxRating:       types.MaxRating.Int(),
		DefaultRating:   types.DefaultRating.Int(),
		AdviceThreshold: q.AdviceThreshold(),
	}
	for _, cat := range q.Categories() {
		c := category{ID: cat.ID.String(), Label: cat.Label}
		for _, qs := range cat.Questions {
			c.Questions = append(c.Questions, question{ID: qs.ID.String(), Text: qs.Text})
		}
		resp.Categories = append(resp.Categories, c)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal questionnaire"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}

type reportRequest struct {
	Name    string         `json:"name"`
	Answers map[string]int `json:"answers"`
}

// handleReport generates a report from a JSON request and returns the PDF as
// an attachment
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	answers := make(model.Answers, len(req.Answers))
	for id, rating := range req.Answers {
		answers[types.QuestionID(id)] = types.Rating(rating)
	}

	rpt, err := s.uc.Report.Generate(ctx, model.NewSubmission(req.Name, answers))
	if err != nil {
		status, _ := failureOf(err)
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	w.Header().Set("Content-Type", rpt.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rpt.FileName()}))
	w.Header().Set("Content-Length", strconv.Itoa(len(rpt.PDF)))
	w.Header().Set("X-Report-ID", rpt.ID.String())
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, rpt.PDF)
}
