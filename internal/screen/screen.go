// Package screen draws the fixed now-playing layout. Every routine builds one
// surface for its region and composites it in a single write.
package screen

import (
	"fmt"
	"image"
	"math"

	"github.com/genricoloni/nowplaying/internal/canvas"
	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/fonts"
	"github.com/genricoloni/nowplaying/internal/kana"
	"github.com/genricoloni/nowplaying/internal/layout"
	"github.com/genricoloni/nowplaying/internal/rgb565"
)

const notPlayingText = "Not Playing"

// wrapGap is appended to scrolling text so the seam reads as whitespace
const wrapGap = "  "

var (
	Background = rgb565.Black
	Foreground = rgb565.White
	Played     = rgb565.Pack(0x1d, 0xb9, 0x54)
	Remaining  = rgb565.Pack(160, 160, 160)
)

// Line is a prepared text line
type Line struct {
	Text  string
	Style fonts.Style
	// ScrollWidth is the rendered width including the wrap gap,
	// or zero when the line fits
	ScrollWidth int
}

func newLine(text string, style fonts.Style) Line {
	if style.Measure(text) <= layout.OverflowWidth {
		return Line{Text: text, Style: style}
	}
	text += wrapGap
	return Line{Text: text, Style: style, ScrollWidth: style.Measure(text)}
}

// Lines holds the normalized title and artist text of a track
type Lines struct {
	Title  Line
	Artist Line
}

// NewLines normalizes and measures the text of track
func NewLines(track domain.SimpleTrack, n *kana.Normalizer) Lines {
	return Lines{
		Title:  newLine(n.Normalize(track.Name), fonts.Title),
		Artist: newLine(n.Normalize(track.ArtistNames()), fonts.Artist),
	}
}

// AlbumCover draws the cover pixels (big-endian RGB565, CoverSize wide)
// centered on a black band. Nil art leaves the band black.
func AlbumCover(t canvas.Target, art []byte) error {
	c := canvas.NewAt(layout.Cover)
	c.Clear(Background)

	dst := layout.CenterTop(layout.Cover, layout.CoverSize, layout.CoverSize)
	rows := min(len(art)/(layout.CoverSize*2), layout.CoverSize)
	for y := 0; y < rows; y++ {
		for x := 0; x < layout.CoverSize; x++ {
			i := (y*layout.CoverSize + x) * 2
			c.Set(dst.Min.X+x, dst.Min.Y+y, rgb565.FromBytes(art[i], art[i+1]))
		}
	}

	return c.Composite(t, Background)
}

// TitleAndArtist draws both text lines with the given marquee offsets
func TitleAndArtist(t canvas.Target, lines Lines, titleShift, artistShift int) error {
	c := canvas.NewAt(layout.Text)
	drawLine(c, lines.Title, titleShift, c.Bounds().Min.Y)
	drawLine(c, lines.Artist, artistShift, c.Bounds().Min.Y+layout.TitleHeight)
	return c.Composite(t, Background)
}

func drawLine(dst *canvas.Canvas, line Line, shift, y int) {
	origin := image.Pt(dst.Bounds().Min.X+layout.TextInset, y)
	if line.ScrollWidth == 0 {
		dst.DrawText(line.Text, line.Style, origin, Foreground)
		return
	}

	full := canvas.New(line.ScrollWidth, line.Style.LineHeight)
	full.DrawText(line.Text, line.Style, image.Point{}, Foreground)
	if shift != 0 {
		full = full.Shift(shift)
	}

	visible := min(line.ScrollWidth, dst.Bounds().Max.X-origin.X)
	mustCrop(full, image.Rect(0, 0, visible, line.Style.LineHeight)).
		PlaceAt(origin).
		DrawOnto(dst)
}

// FilledWidth is the played length of a bar barWidth pixels long.
// The +1 makes the bar move at the start of each second. A non-positive
// duration fills the bar.
func FilledWidth(progress, duration, barWidth int) int {
	if duration <= 0 {
		return barWidth
	}
	w := int(math.Round(float64(barWidth) * float64(progress+1) / float64(duration)))
	return min(max(w, 0), barWidth)
}

// Progress draws the played segment, the thumb and the remaining segment
func Progress(t canvas.Target, progress, duration int) error {
	c := canvas.NewAt(layout.Progress)
	c.Clear(Background)

	played := max(FilledWidth(progress, duration, layout.BarWidth)-layout.ThumbRadius, 0)
	remaining := max(layout.BarWidth-played-layout.ThumbRadius, 0)

	playedColor, remainingColor := Played, Remaining
	if played == 0 {
		playedColor = Background
	}
	if remaining == 0 {
		remainingColor = Background
	}
	played, remaining = max(played, 1), max(remaining, 1)

	diameter := 2*layout.ThumbRadius + 1
	row := layout.CenterIn(layout.Progress, played+diameter+remaining, diameter)
	barY := row.Min.Y + (diameter-layout.BarThickness)/2

	x := row.Min.X
	c.FillRect(image.Rect(x, barY, x+played, barY+layout.BarThickness), playedColor)
	x += played
	c.FillCircle(image.Pt(x, row.Min.Y), diameter, Played)
	x += diameter
	c.FillRect(image.Rect(x, barY, x+remaining, barY+layout.BarThickness), remainingColor)

	return c.Composite(t, Background)
}

// NotPlaying clears the screen to the placeholder
func NotPlaying(t canvas.Target) error {
	c := canvas.NewAt(layout.Screen)
	style := fonts.Title
	box := layout.CenterTop(layout.Screen, style.Measure(notPlayingText), style.LineHeight)
	c.DrawText(notPlayingText, style, box.Min, Foreground)
	return c.Composite(t, Background)
}

// mustCrop panics on a crop outside the surface. All geometry is fixed, so
// this only fires on a programming error.
func mustCrop(c *canvas.Canvas, r image.Rectangle) *canvas.Canvas {
	sub, err := c.Crop(r)
	if err != nil {
		panic(fmt.Sprintf("screen: %v", err))
	}
	return sub
}
