package model_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

func newCategories() []model.Category {
	var categories []model.Category
	for _, id := range []string{"a", "b", "c", "d"} {
		cat := model.Category{
			ID:     types.CategoryID(id),
			Label:  "Category " + id,
			Advice: []string{id + " advice 1", id + " advice 2"},
		}
		for n := 1; n <= model.QuestionsPerCategory; n++ {
			cat.Questions = append(cat.Questions, model.Question{
				ID:   types.QuestionID(fmt.Sprintf("%s-%d", id, n)),
				Text: fmt.Sprintf("question %s-%d", id, n),
			})
		}
		categories = append(categories, cat)
	}
	return categories
}

func newQuestionnaire(t *testing.T) *model.Questionnaire {
	t.Helper()
	q, err := model.NewQuestionnaire("Stress report", newCategories(), model.WithCaption("1 to 5"))
	gt.NoError(t, err).Required()
	return q
}

func TestNewQuestionnaire(t *testing.T) {
	t.Run("valid definition", func(t *testing.T) {
		q := newQuestionnaire(t)
		gt.Value(t, q.Title()).Equal("Stress report")
		gt.Value(t, q.Caption()).Equal("1 to 5")
		gt.Value(t, q.AdviceThreshold()).Equal(model.DefaultAdviceThreshold)
		gt.Value(t, q.QuestionCount()).Equal(12)
		gt.Array(t, q.Categories()).Length(4)
		gt.Bool(t, q.HasQuestion("c-2")).True()
		gt.Bool(t, q.HasQuestion("e-1")).False()
	})

	tests := []struct {
		name    string
		title   string
		modify  func([]model.Category) []model.Category
		wantErr error
	}{
		{
			name:    "empty title",
			title:   "",
			modify:  func(c []model.Category) []model.Category { return c },
			wantErr: model.ErrInvalidQuestionnaire,
		},
		{
			name:    "three categories",
			title:   "t",
			modify:  func(c []model.Category) []model.Category { return c[:3] },
			wantErr: model.ErrInvalidQuestionnaire,
		},
		{
			name:  "duplicate category",
			title: "t",
			modify: func(c []model.Category) []model.Category {
				c[1].ID = "a"
				return c
			},
			wantErr: model.ErrDuplicateID,
		},
		{
			name:  "duplicate question",
			title: "t",
			modify: func(c []model.Category) []model.Category {
				c[1].Questions[0].ID = "a-1"
				return c
			},
			wantErr: model.ErrDuplicateID,
		},
		{
			name:  "two questions",
			title: "t",
			modify: func(c []model.Category) []model.Category {
				c[2].Questions = c[2].Questions[:2]
				return c
			},
			wantErr: model.ErrInvalidQuestionnaire,
		},
		{
			name:  "one advice bullet",
			title: "t",
			modify: func(c []model.Category) []model.Category {
				c[3].Advice = c[3].Advice[:1]
				return c
			},
			wantErr: model.ErrInvalidQuestionnaire,
		},
		{
			name:  "missing label",
			title: "t",
			modify: func(c []model.Category) []model.Category {
				c[0].Label = ""
				return c
			},
			wantErr: model.ErrInvalidQuestionnaire,
		},
		{
			name:  "missing question text",
			title: "t",
			modify: func(c []model.Category) []model.Category {
				c[0].Questions[2].Text = ""
				return c
			},
			wantErr: model.ErrInvalidQuestionnaire,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewQuestionnaire(tt.title, tt.modify(newCategories()))
			gt.Error(t, err).Is(tt.wantErr)
		})
	}

	t.Run("invalid category ID", func(t *testing.T) {
		c := newCategories()
		c[0].ID = "A"
		_, err := model.NewQuestionnaire("t", c)
		gt.Value(t, err).NotNil()
	})
}

func TestQuestionnaire_Immutable(t *testing.T) {
	src := newCategories()
	q, err := model.NewQuestionnaire("t", src)
	gt.NoError(t, err).Required()

	src[0].Label = "changed"
	src[0].Advice[0] = "changed"

	got := q.Categories()
	gt.Value(t, got[0].Label).Equal("Category a")
	gt.Value(t, got[0].Advice[0]).Equal("a advice 1")

	got[1].Questions[0].Text = "changed"
	cat, ok := q.Category("b")
	gt.Bool(t, ok).True()
	gt.Value(t, cat.Questions[0].Text).Equal("question b-1")
}

func TestCategory_ScoreRange(t *testing.T) {
	cat := newCategories()[0]
	gt.Value(t, cat.MinScore()).Equal(3)
	gt.Value(t, cat.MaxScore()).Equal(15)
}
