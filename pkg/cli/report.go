package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/stresscheck/pkg/cli/config"
	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/service/report"
	"github.com/secmon-lab/stresscheck/pkg/usecase"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
)

func cmdReport() *cli.Command {
	var answersPath string
	var outputPath string
	var quiet bool
	var fontCfg config.Font

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "answers",
			Aliases:     []string{"a"},
			Usage:       "Path to answers TOML file (all ratings default to 3 if omitted)",
			Sources:     cli.EnvVars("STRESSCHECK_ANSWERS"),
			Destination: &answersPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Path of the generated PDF",
			Value:       model.ReportFileName,
			Destination: &outputPath,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "Do not print the score summary",
			Destination: &quiet,
		},
	}
	flags = append(flags, fontCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Generate a report PDF from an answers file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			q, err := config.LoadQuestionnaire()
			if err != nil {
				return goerr.Wrap(err, "failed to load questionnaire")
			}

			sub, err := config.LoadAnswers(answersPath)
			if err != nil {
				return err
			}

			uc := usecase.New(q, fontCfg.Configure())
			rpt, err := uc.Report.Generate(ctx, sub)
			if err != nil {
				return goerr.Wrap(err, "failed to generate report", goerr.V("font", fontCfg))
			}

			if err := os.WriteFile(outputPath, rpt.PDF, 0600); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", outputPath))
			}
			logging.Default().Info("Report written", "path", outputPath, "report_id", rpt.ID, "size", len(rpt.PDF))

			if !quiet {
				printSummary(c.Root().Writer, report.Layout(q, sub.Name, rpt.Scores))
			}
			return nil
		},
	}
}

func printSummary(w io.Writer, doc *report.Document) {
	if w == nil {
		w = os.Stdout
	}

	title := color.New(color.Bold)
	warn := color.New(color.FgYellow, color.Bold)

	_, _ = title.Fprintln(w, doc.Title)
	if doc.Respondent != "" {
		_, _ = fmt.Fprintln(w, doc.Respondent)
	}
	for _, line := range doc.ScoreLines {
		_, _ = fmt.Fprintln(w, line)
	}
	for _, adv := range doc.Advisories {
		_, _ = fmt.Fprintln(w)
		_, _ = warn.Fprintln(w, adv.Header)
		for _, b := range adv.Bullets {
			_, _ = fmt.Fprintln(w, b)
		}
	}
}
