package model

import "github.com/golang/freetype/truetype"

// Font is a TrueType font loaded for one generation attempt. Data is handed
// to the PDF writer as is; TrueType is the parsed form used for glyph lookup
// and raster rendering.
type Font struct {
	Data     []byte
	TrueType *truetype.Font
}
