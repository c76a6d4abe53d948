// Package fonttest provides fonts for tests. Boxes maps every character of the
// built-in questionnaire, the fixed report phrases and printable ASCII to a
// plain box glyph, so it stands in for a Japanese font without shipping one.
package fonttest

import (
	_ "embed"

	"golang.org/x/image/font/gofont/goregular"
)

//go:embed testdata/boxes.ttf
var Boxes []byte

// LatinOnly is a valid TrueType font without Japanese glyphs
var LatinOnly = goregular.TTF
