package font

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/golang/freetype/truetype"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/stresscheck/pkg/domain/model"
	"github.com/secmon-lab/stresscheck/pkg/utils/safe"
)

// Font load errors
var (
	ErrNotFound = goerr.New("font file not found")
	ErrInvalid  = goerr.New("invalid TrueType font")
)

// File reads a TrueType font from the filesystem on every Load call, so that a
// font installed or removed after startup is picked up by the next attempt.
type File struct {
	path string
}

// NewFile returns a font source backed by a font file at path
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the configured font path
func (f *File) Path() string {
	return f.path
}

// Load reads and parses the font file
func (f *File) Load(ctx context.Context) (*model.Font, error) {
	if f.path == "" {
		return nil, goerr.Wrap(ErrNotFound, "font path is not configured")
	}

	// #nosec G304 - path is provided by CLI flag
	fd, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrNotFound, err.Error(), goerr.V("path", f.path))
		}
		return nil, goerr.Wrap(err, "failed to open font file", goerr.V("path", f.path))
	}
	defer safe.Close(ctx, fd)

	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read font file", goerr.V("path", f.path))
	}

	parsed, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "font file is not usable", goerr.V("path", f.path))
	}
	return parsed, nil
}

// Static serves font data already held in memory
type Static struct {
	data []byte
}

// NewStatic returns a font source that always returns data
func NewStatic(data []byte) *Static {
	return &Static{data: data}
}

// Load parses the font data
func (s *Static) Load(ctx context.Context) (*model.Font, error) {
	return Parse(s.data)
}

// Parse checks that data is a TrueType font and parses it once for both PDF
// embedding and raster rendering
func Parse(data []byte) (*model.Font, error) {
	if len(data) == 0 {
		return nil, goerr.Wrap(ErrInvalid, "font data is empty")
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalid, err.Error(), goerr.V("size", len(data)))
	}
	return &model.Font{Data: data, TrueType: ttf}, nil
}

// Covers checks that the font has a glyph for every printed rune of texts.
// A font without them would produce a document with blank or boxed text, so
// it is treated like an invalid font.
func Covers(f *model.Font, texts ...string) error {
	var missing []string
	seen := map[rune]struct{}{}

	for _, text := range texts {
		for _, r := range text {
			if unicode.IsSpace(r) {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}

			if f.TrueType.Index(r) == 0 {
				missing = append(missing, string(r))
			}
		}
	}

	if len(missing) > 0 {
		return goerr.Wrap(ErrInvalid, "font lacks glyphs for report text",
			goerr.V("missing", strings.Join(missing, "")),
			goerr.V("missing_count", len(missing)))
	}
	return nil
}
