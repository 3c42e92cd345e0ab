package domain

import (
	"context"
	"image"
	"iter"

	"github.com/genricoloni/nowplaying/internal/rgb565"
)

// Source provides the current playback state
//
//go:generate mockgen -destination=mocks/source_mock.go -package=mocks github.com/genricoloni/nowplaying/internal/domain Source
type Source interface {
	// CurrentlyPlaying returns the playback state, or nil when nothing plays.
	// Errors wrap ErrTransient or ErrMalformed.
	CurrentlyPlaying(ctx context.Context) (*Playing, error)
}

// Fetcher retrieves encoded album artwork
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	// and resolves its encoding
	Fetch(ctx context.Context, url string) (Artwork, error)
}

// ArtProcessor turns encoded artwork into display pixels
type ArtProcessor interface {
	// Process decodes, resizes and converts the artwork to
	// big-endian RGB565 bytes of the cover square
	Process(ctx context.Context, art Artwork) ([]byte, error)
}

// ArtLoader combines fetching and processing
//
//go:generate mockgen -destination=mocks/art_loader_mock.go -package=mocks github.com/genricoloni/nowplaying/internal/domain ArtLoader
type ArtLoader interface {
	// Load returns cover pixels ready for the display
	Load(ctx context.Context, url string) ([]byte, error)
}

// Display is the physical output
type Display interface {
	// Bounds is the addressable area
	Bounds() image.Rectangle

	// FillContiguous writes colors row-major into area.
	// The sequence yields exactly area.Dx()*area.Dy() colors.
	FillContiguous(area image.Rectangle, colors iter.Seq[rgb565.Color]) error
}

// Emitter accepts events for the render engine
type Emitter interface {
	// Send enqueues an event, blocking or dropping per the mailbox policy
	Send(ctx context.Context, ev Event) error
}
