package processor

import (
	"context"
	"fmt"

	"github.com/genricoloni/nowplaying/internal/domain"
)

// Loader fetches artwork and converts it for the display
type Loader struct {
	fetcher   domain.Fetcher
	processor domain.ArtProcessor
}

// NewLoader creates a loader from its two stages
func NewLoader(fetcher domain.Fetcher, processor domain.ArtProcessor) *Loader {
	return &Loader{fetcher: fetcher, processor: processor}
}

// Load returns cover pixels for url
func (l *Loader) Load(ctx context.Context, url string) ([]byte, error) {
	art, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch art: %w", err)
	}

	pixels, err := l.processor.Process(ctx, art)
	if err != nil {
		return nil, fmt.Errorf("process art: %w", err)
	}
	return pixels, nil
}
