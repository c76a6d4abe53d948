package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/stresscheck/pkg/cli"
	"github.com/secmon-lab/stresscheck/pkg/cli/config"
	"github.com/secmon-lab/stresscheck/pkg/service/font"
	"github.com/secmon-lab/stresscheck/pkg/service/font/fonttest"
	"github.com/secmon-lab/stresscheck/pkg/usecase"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, data, 0600)).Required()
	return path
}

func TestReportCommand(t *testing.T) {
	fontPath := writeFile(t, "font.ttf", fonttest.Boxes)

	t.Run("default answers", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "out.pdf")
		err := cli.Run(context.Background(), []string{
			"stresscheck", "report", "--quiet", "--font", fontPath, "--output", output,
		}, "test")
		gt.NoError(t, err).Required()

		data, err := os.ReadFile(output)
		gt.NoError(t, err).Required()
		gt.Bool(t, bytes.HasPrefix(data, []byte("%PDF-"))).True()
	})

	t.Run("answers file", func(t *testing.T) {
		answers := writeFile(t, "answers.toml", []byte(`name = "Taro"

[answers]
a-1 = 5
a-2 = 5
a-3 = 5
`))
		output := filepath.Join(t.TempDir(), "out.pdf")
		err := cli.Run(context.Background(), []string{
			"stresscheck", "report", "-q", "--font", fontPath, "--answers", answers, "--output", output,
		}, "test")
		gt.NoError(t, err).Required()

		_, err = os.Stat(output)
		gt.NoError(t, err)
	})

	t.Run("rating out of range", func(t *testing.T) {
		answers := writeFile(t, "answers.toml", []byte("[answers]\na-1 = 9\n"))
		output := filepath.Join(t.TempDir(), "out.pdf")
		err := cli.Run(context.Background(), []string{
			"stresscheck", "report", "-q", "--font", fontPath, "--answers", answers, "--output", output,
		}, "test")
		gt.Error(t, err).Is(usecase.ErrInvalidSubmission)

		_, err = os.Stat(output)
		gt.Bool(t, os.IsNotExist(err)).True()
	})

	t.Run("missing answers file", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{
			"stresscheck", "report", "--font", fontPath, "--answers", filepath.Join(t.TempDir(), "none.toml"),
		}, "test")
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("missing font", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "out.pdf")
		err := cli.Run(context.Background(), []string{
			"stresscheck", "report", "-q", "--font", filepath.Join(t.TempDir(), "none.ttf"), "--output", output,
		}, "test")
		gt.Error(t, err).Is(usecase.ErrResourceLoad)

		_, err = os.Stat(output)
		gt.Bool(t, os.IsNotExist(err)).True()
	})
}

func TestReportCommand_LatinOnlyFont(t *testing.T) {
	fontPath := writeFile(t, "latin.ttf", fonttest.LatinOnly)
	output := filepath.Join(t.TempDir(), "out.pdf")

	err := cli.Run(context.Background(), []string{
		"stresscheck", "report", "-q", "--font", fontPath, "--output", output,
	}, "test")
	gt.Error(t, err).Is(usecase.ErrResourceLoad)
	gt.Error(t, err).Is(font.ErrInvalid)

	_, err = os.Stat(output)
	gt.Bool(t, os.IsNotExist(err)).True()
}

func TestQuestionsCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{"stresscheck", "questions"}, "test")
	gt.NoError(t, err)
}
