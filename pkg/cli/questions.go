package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/stresscheck/pkg/cli/config"
	"github.com/secmon-lab/stresscheck/pkg/domain/types"
)

func cmdQuestions() *cli.Command {
	return &cli.Command{
		Name:    "questions",
		Aliases: []string{"q"},
		Usage:   "Print the questionnaire with question IDs for answers files",
		Action: func(ctx context.Context, c *cli.Command) error {
			q, err := config.LoadQuestionnaire()
			if err != nil {
				return goerr.Wrap(err, "failed to load questionnaire")
			}

			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}

			heading := color.New(color.Bold)
			id := color.New(color.FgCyan)

			_, _ = heading.Fprintln(w, q.Title())
			_, _ = fmt.Fprintln(w, q.Caption())
			for _, cat := range q.Categories() {
				_, _ = fmt.Fprintln(w)
				_, _ = heading.Fprintf(w, "%s (%d-%d)\n", cat.Label, cat.MinScore(), cat.MaxScore())
				for _, question := range cat.Questions {
					_, _ = fmt.Fprintf(w, "  %s %s\n", id.Sprint(question.ID), question.Text)
				}
			}
			_, _ = fmt.Fprintf(w, "\nratings: %d-%d (default %d)\n",
				types.MinRating.Int(), types.MaxRating.Int(), types.DefaultRating.Int())
			return nil
		},
	}
}
