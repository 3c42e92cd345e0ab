// Package fonts holds the fixed bitmap text styles.
package fonts

import (
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Style is a monospaced bitmap face together with the line box it is drawn in
type Style struct {
	Face font.Face
	// Advance is the horizontal cell width in pixels
	Advance int
	// LineHeight is the height of the line box in pixels
	LineHeight int
	// Ascent is the baseline offset from the top of the line box
	Ascent int
}

// Measure returns the rendered width of text in pixels.
// Runes the face has no glyph for draw the replacement glyph, so every rune
// takes one cell.
func (s Style) Measure(text string) int {
	return utf8.RuneCountInString(text) * s.Advance
}

// _face6x13 packs the 7x13 glyphs one pixel tighter. The glyph masks are
// six pixels wide so nothing is clipped.
var _face6x13 = &basicfont.Face{
	Advance: 6,
	Width:   basicfont.Face7x13.Width,
	Height:  basicfont.Face7x13.Height,
	Ascent:  basicfont.Face7x13.Ascent,
	Descent: basicfont.Face7x13.Descent,
	Left:    basicfont.Face7x13.Left,
	Mask:    basicfont.Face7x13.Mask,
	Ranges:  basicfont.Face7x13.Ranges,
}

var (
	// Title is used for the track name and the "Not Playing" placeholder
	Title = Style{
		Face:       basicfont.Face7x13,
		Advance:    basicfont.Face7x13.Advance,
		LineHeight: 14,
		Ascent:     basicfont.Face7x13.Ascent,
	}

	// Artist is used for the artist line
	Artist = Style{
		Face:       _face6x13,
		Advance:    _face6x13.Advance,
		LineHeight: 13,
		Ascent:     _face6x13.Ascent,
	}
)
