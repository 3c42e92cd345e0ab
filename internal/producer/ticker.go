package producer

import (
	"context"
	"time"

	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
)

// ScrollTicker drives the marquee
type ScrollTicker struct {
	logger   *zap.Logger
	out      domain.Emitter
	interval time.Duration
}

// NewScrollTicker creates a ticker firing every cfg.ScrollInterval
func NewScrollTicker(logger *zap.Logger, cfg *config.AppConfig, out domain.Emitter) *ScrollTicker {
	return &ScrollTicker{
		logger:   logger,
		out:      out,
		interval: cfg.ScrollInterval,
	}
}

// Run sends a ScrollTick per interval until ctx is done. A tick the
// mailbox refuses is simply skipped.
func (s *ScrollTicker) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Scroll ticker stopped")
			return nil
		case <-ticker.C:
			if err := s.out.Send(ctx, domain.ScrollTick{}); err != nil && ctx.Err() == nil {
				s.logger.Debug("Scroll tick not delivered", zap.Error(err))
			}
		}
	}
}
