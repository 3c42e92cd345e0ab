// Package layout holds the fixed screen geometry and small rectangle helpers.
package layout

import "image"

const (
	ScreenWidth  = 128
	ScreenHeight = 160

	// CoverSize is the side of the square album art
	CoverSize = 114

	TitleHeight  = 14
	ArtistHeight = 13

	// TextInset is the left margin of both text lines
	TextInset = 2
	// OverflowWidth is the rendered width above which a line scrolls
	OverflowWidth = ScreenWidth - 4

	// ProgressPadding is the horizontal margin on each side of the bar
	ProgressPadding = 10
	ThumbRadius     = 4
	BarThickness    = 3
	BarWidth        = ScreenWidth - 2*ProgressPadding
)

var (
	// Screen is the full display
	Screen = image.Rect(0, 0, ScreenWidth, ScreenHeight)

	// Cover is the full-width band holding the album art
	Cover, _ = SplitHorizontal(Screen, CoverSize)

	// Text holds both text lines. Its right edge stops short of the screen edge.
	Text = image.Rect(0, Cover.Max.Y, ScreenWidth-4, Cover.Max.Y+TitleHeight+ArtistHeight)

	// Progress is everything below the text
	Progress = image.Rect(0, Text.Max.Y, ScreenWidth, ScreenHeight)
)

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// CenterIn returns a rectangle of size (widthPx,heightPx) centered in rect.
// Odd remainders round toward the top-left.
func CenterIn(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// CenterTop returns a rectangle of size (widthPx,heightPx) centered
// horizontally along the top edge of rect.
func CenterTop(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	return image.Rect(x, rect.Min.Y, x+widthPx, rect.Min.Y+heightPx)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
