//go:build linux

package display

import (
	"fmt"
	"image"
	"iter"

	"github.com/genricoloni/nowplaying/internal/layout"
	"github.com/genricoloni/nowplaying/internal/rgb565"
	fb "github.com/gonutz/framebuffer"
	"go.uber.org/zap"
)

// Framebuffer draws the fixed layout into the top-left of a Linux
// framebuffer device
type Framebuffer struct {
	logger *zap.Logger
	dev    *fb.Device
	origin image.Point
}

// OpenFramebuffer opens the device at path. The device must be at least as
// large as the layout.
func OpenFramebuffer(logger *zap.Logger, path string) (*Framebuffer, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open framebuffer %s: %w", path, err)
	}

	bounds := dev.Bounds()
	if bounds.Dx() < layout.ScreenWidth || bounds.Dy() < layout.ScreenHeight {
		_ = dev.Close()
		return nil, fmt.Errorf("framebuffer %s is %dx%d, need at least %dx%d",
			path, bounds.Dx(), bounds.Dy(), layout.ScreenWidth, layout.ScreenHeight)
	}

	logger.Info("Framebuffer open",
		zap.String("device", path),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	return &Framebuffer{logger: logger, dev: dev, origin: bounds.Min}, nil
}

// Bounds returns the logical screen
func (f *Framebuffer) Bounds() image.Rectangle {
	return layout.Screen
}

// FillContiguous writes colors row-major into area
func (f *Framebuffer) FillContiguous(area image.Rectangle, colors iter.Seq[rgb565.Color]) error {
	buf, err := collect(area, f.Bounds(), colors)
	if err != nil {
		return err
	}
	w := area.Dx()
	for i, c := range buf {
		f.dev.Set(f.origin.X+area.Min.X+i%w, f.origin.Y+area.Min.Y+i/w, c)
	}
	return nil
}

// Close releases the device mapping
func (f *Framebuffer) Close() error {
	return f.dev.Close()
}
