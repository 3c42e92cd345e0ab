//go:build !linux

package display

import (
	"errors"
	"image"
	"iter"

	"github.com/genricoloni/nowplaying/internal/layout"
	"github.com/genricoloni/nowplaying/internal/rgb565"
	"go.uber.org/zap"
)

// Framebuffer is only available on Linux
type Framebuffer struct{}

// OpenFramebuffer always fails on this platform
func OpenFramebuffer(logger *zap.Logger, path string) (*Framebuffer, error) {
	return nil, errors.New("framebuffer output is only supported on linux")
}

// Bounds returns the logical screen
func (f *Framebuffer) Bounds() image.Rectangle { return layout.Screen }

// FillContiguous always fails on this platform
func (f *Framebuffer) FillContiguous(image.Rectangle, iter.Seq[rgb565.Color]) error {
	return errors.New("framebuffer output is only supported on linux")
}

// Close is a no-op on this platform
func (f *Framebuffer) Close() error { return nil }
