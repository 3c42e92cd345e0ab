// Package canvas implements the scratch pixel surface every redraw is built on.
//
// A Canvas is a grid of optional colors. Unset cells are transparent and are
// replaced by a background color when the surface is composited onto a
// Target. Coordinates are absolute: a canvas placed at (2, 114) addresses its
// top-left cell as (2, 114).
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"iter"

	"github.com/genricoloni/nowplaying/internal/fonts"
	"github.com/genricoloni/nowplaying/internal/rgb565"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Target receives batched writes
type Target interface {
	Bounds() image.Rectangle
	FillContiguous(area image.Rectangle, colors iter.Seq[rgb565.Color]) error
}

// Canvas is an in-memory surface. Views returned by Crop and PlaceAt share
// pixels with their parent.
type Canvas struct {
	rect   image.Rectangle
	stride int
	pix    []rgb565.Color
	set    []bool
}

var _ draw.Image = (*Canvas)(nil)

// New returns a transparent w×h canvas with its origin at (0, 0)
func New(w, h int) *Canvas {
	return NewAt(image.Rect(0, 0, w, h))
}

// NewAt returns a transparent canvas covering rect
func NewAt(rect image.Rectangle) *Canvas {
	rect = rect.Canon()
	n := rect.Dx() * rect.Dy()
	return &Canvas{
		rect:   rect,
		stride: rect.Dx(),
		pix:    make([]rgb565.Color, n),
		set:    make([]bool, n),
	}
}

// Bounds implements image.Image
func (c *Canvas) Bounds() image.Rectangle { return c.rect }

// ColorModel implements image.Image
func (c *Canvas) ColorModel() color.Model { return rgb565.Model }

// At implements image.Image. Unset cells are fully transparent.
func (c *Canvas) At(x, y int) color.Color {
	if px, ok := c.Pixel(x, y); ok {
		return px
	}
	return color.RGBA{}
}

// Set implements draw.Image. A fully transparent color unsets the cell.
func (c *Canvas) Set(x, y int, col color.Color) {
	if !image.Pt(x, y).In(c.rect) {
		return
	}
	i := c.index(x, y)
	if _, _, _, a := col.RGBA(); a == 0 {
		c.set[i] = false
		return
	}
	c.pix[i] = rgb565.Model.Convert(col).(rgb565.Color)
	c.set[i] = true
}

// Pixel returns the cell at (x, y) and whether it is set
func (c *Canvas) Pixel(x, y int) (rgb565.Color, bool) {
	if !image.Pt(x, y).In(c.rect) {
		return 0, false
	}
	i := c.index(x, y)
	return c.pix[i], c.set[i]
}

func (c *Canvas) index(x, y int) int {
	return (y-c.rect.Min.Y)*c.stride + (x - c.rect.Min.X)
}

func (c *Canvas) setPixel(x, y int, col rgb565.Color) {
	i := c.index(x, y)
	c.pix[i] = col
	c.set[i] = true
}

// Clear sets every cell to col
func (c *Canvas) Clear(col rgb565.Color) {
	c.FillRect(c.rect, col)
}

// FillRect fills r, clipped to the canvas
func (c *Canvas) FillRect(r image.Rectangle, col rgb565.Color) {
	r = r.Intersect(c.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// FillCircle fills the circle of the given diameter whose bounding square has
// its top-left corner at topLeft. Cells are filled when their centre lies
// inside the circle.
func (c *Canvas) FillCircle(topLeft image.Point, diameter int, col rgb565.Color) {
	box := image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(diameter, diameter))}
	clipped := box.Intersect(c.rect)
	d2 := diameter * diameter
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		dy := 2*(y-box.Min.Y) + 1 - diameter
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			dx := 2*(x-box.Min.X) + 1 - diameter
			if dx*dx+dy*dy <= d2 {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawText draws a single line of text with its line box's top-left at pt.
// Glyph cells the face leaves empty stay transparent.
func (c *Canvas) DrawText(text string, style fonts.Style, pt image.Point, col rgb565.Color) {
	d := &font.Drawer{
		Dst:  c,
		Src:  image.NewUniform(col),
		Face: style.Face,
		Dot:  fixed.P(pt.X, pt.Y+style.Ascent),
	}
	d.DrawString(text)
}

// Crop returns a view of r sharing pixels with c. r must lie within the canvas.
func (c *Canvas) Crop(r image.Rectangle) (*Canvas, error) {
	if r.Empty() || !r.In(c.rect) {
		return nil, fmt.Errorf("crop %v outside surface %v", r, c.rect)
	}
	i := c.index(r.Min.X, r.Min.Y)
	return &Canvas{
		rect:   r,
		stride: c.stride,
		pix:    c.pix[i:],
		set:    c.set[i:],
	}, nil
}

// PlaceAt returns a view of c with its top-left moved to p. No pixels are copied.
func (c *Canvas) PlaceAt(p image.Point) *Canvas {
	return &Canvas{
		rect:   c.rect.Add(p.Sub(c.rect.Min)),
		stride: c.stride,
		pix:    c.pix,
		set:    c.set,
	}
}

// Shift returns a new canvas where each row is rotated left by shift
// columns: column x holds the cell previously at (x+shift) mod width.
// The result is written to a fresh buffer since source and destination
// indices overlap.
func (c *Canvas) Shift(shift int) *Canvas {
	out := NewAt(c.rect)
	w := c.rect.Dx()
	if w == 0 {
		return out
	}
	for y := c.rect.Min.Y; y < c.rect.Max.Y; y++ {
		for x := c.rect.Min.X; x < c.rect.Max.X; x++ {
			col, ok := c.Pixel(x, y)
			if !ok {
				continue
			}
			nx := mod(x-c.rect.Min.X-shift, w) + c.rect.Min.X
			out.setPixel(nx, y, col)
		}
	}
	return out
}

// DrawOnto copies the set cells of c into dst, clipped to dst
func (c *Canvas) DrawOnto(dst *Canvas) {
	r := c.rect.Intersect(dst.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if col, ok := c.Pixel(x, y); ok {
				dst.setPixel(x, y, col)
			}
		}
	}
}

// Colors yields every cell row-major, substituting background for unset cells
func (c *Canvas) Colors(background rgb565.Color) iter.Seq[rgb565.Color] {
	return func(yield func(rgb565.Color) bool) {
		for y := c.rect.Min.Y; y < c.rect.Max.Y; y++ {
			row := c.index(c.rect.Min.X, y)
			for i := row; i < row+c.rect.Dx(); i++ {
				col := background
				if c.set[i] {
					col = c.pix[i]
				}
				if !yield(col) {
					return
				}
			}
		}
	}
}

// Composite writes the whole canvas to t in a single batched fill
func (c *Canvas) Composite(t Target, background rgb565.Color) error {
	if !c.rect.In(t.Bounds()) {
		return fmt.Errorf("composite %v outside target %v", c.rect, t.Bounds())
	}
	return t.FillContiguous(c.rect, c.Colors(background))
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
