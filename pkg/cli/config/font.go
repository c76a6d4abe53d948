package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/stresscheck/pkg/service/font"
)

// DefaultFontPath is the IPAex Gothic file name looked up in the working
// directory when --font is not given
const DefaultFontPath = "ipaexg.ttf"

// Font holds the location of the TrueType font used for charts and reports
type Font struct {
	path string
}

// Flags returns CLI flags for font configuration
func (x *Font) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "font",
			Usage:       "Path to a TrueType font with Japanese glyphs (e.g. IPAex Gothic)",
			Category:    "Report",
			Value:       DefaultFontPath,
			Sources:     cli.EnvVars("STRESSCHECK_FONT"),
			Destination: &x.path,
		},
	}
}

// LogValue returns log attributes for the font configuration
func (x Font) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure returns a font source reading the configured file on every
// generation attempt
func (x *Font) Configure() *font.File {
	return font.NewFile(x.path)
}
