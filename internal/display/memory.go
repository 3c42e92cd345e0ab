// Package display implements the physical outputs: the Linux framebuffer on
// the device and an in-memory screen for the simulator and tests.
package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"iter"
	"sync"

	"github.com/genricoloni/nowplaying/internal/layout"
	"github.com/genricoloni/nowplaying/internal/rgb565"
)

// Memory is an RGBA-backed display. It is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	img    *image.RGBA
	gen    uint64
	onFill func(area image.Rectangle)
}

// NewMemory returns a black screen of the fixed layout size
func NewMemory() *Memory {
	img := image.NewRGBA(layout.Screen)
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Memory{img: img}
}

// OnFill registers fn to be called after every successful fill
func (m *Memory) OnFill(fn func(area image.Rectangle)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFill = fn
}

// Bounds returns the screen rectangle
func (m *Memory) Bounds() image.Rectangle {
	return layout.Screen
}

// FillContiguous writes colors row-major into area. The write is applied only
// if the sequence covers the area exactly.
func (m *Memory) FillContiguous(area image.Rectangle, colors iter.Seq[rgb565.Color]) error {
	buf, err := collect(area, m.Bounds(), colors)
	if err != nil {
		return err
	}

	m.mu.Lock()
	w := area.Dx()
	for i, c := range buf {
		m.img.Set(area.Min.X+i%w, area.Min.Y+i/w, c)
	}
	m.gen++
	hook := m.onFill
	m.mu.Unlock()

	if hook != nil {
		hook(area)
	}
	return nil
}

// Generation counts successful fills
func (m *Memory) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Snapshot returns a copy of the screen and its generation
func (m *Memory) Snapshot() (*image.RGBA, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := image.NewRGBA(m.img.Bounds())
	copy(out.Pix, m.img.Pix)
	return out, m.gen
}

// At returns the color at (x, y) as stored on screen
func (m *Memory) At(x, y int) rgb565.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return rgb565.Model.Convert(m.img.At(x, y)).(rgb565.Color)
}

// collect validates area against bounds and drains colors, which must yield
// exactly one color per cell
func collect(area, bounds image.Rectangle, colors iter.Seq[rgb565.Color]) ([]rgb565.Color, error) {
	if area.Empty() || !area.In(bounds) {
		return nil, fmt.Errorf("fill area %v outside display %v", area, bounds)
	}
	want := area.Dx() * area.Dy()
	buf := make([]rgb565.Color, 0, want)
	for c := range colors {
		if len(buf) == want {
			return nil, fmt.Errorf("fill %v: more than %d colors", area, want)
		}
		buf = append(buf, c)
	}
	if len(buf) != want {
		return nil, fmt.Errorf("fill %v: got %d colors, want %d", area, len(buf), want)
	}
	return buf, nil
}
