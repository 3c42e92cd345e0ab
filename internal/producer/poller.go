package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
)

// snapshot is the outcome of one successful poll
type snapshot struct {
	playing *domain.Playing
	art     []byte
	changed bool
}

// Poller fetches playback state and feeds the render engine
type Poller struct {
	logger *zap.Logger
	source domain.Source
	loader domain.ArtLoader
	out    domain.Emitter

	retry     backoff.BackOff
	idleDelay time.Duration
	ticks     int
	tickEvery time.Duration
	outage    int

	// Only touched by Run
	lastName string
	hasLast  bool
	art      []byte
	failures int
}

// NewPoller creates a poller. out is usually the mailbox.
func NewPoller(
	logger *zap.Logger,
	cfg *config.AppConfig,
	source domain.Source,
	loader domain.ArtLoader,
	out domain.Emitter,
) *Poller {
	return &Poller{
		logger:    logger,
		source:    source,
		loader:    loader,
		out:       out,
		retry:     backoff.NewConstantBackOff(cfg.RetryDelay),
		idleDelay: cfg.IdleDelay,
		ticks:     cfg.ProgressTicks,
		tickEvery: time.Second,
		outage:    cfg.OutageThreshold,
	}
}

// Run polls until ctx is done. It returns nil on cancellation and an error
// only for failures no retry can fix, such as artwork in an encoding the
// processor cannot decode.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Poller started")
	defer p.logger.Info("Poller stopped")

	for {
		snap, err := backoff.RetryNotifyWithData(
			func() (snapshot, error) {
				snap, err := p.fetch(ctx)
				if err != nil {
					p.failed(ctx)
				} else {
					p.failures = 0
				}
				return snap, err
			},
			backoff.WithContext(p.retry, ctx),
			p.notify,
		)
		if err == nil {
			err = p.publish(ctx, snap)
		}
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (p *Poller) notify(err error, wait time.Duration) {
	p.logger.Warn("Poll failed, retrying", zap.Error(err), zap.Duration("in", wait))
}

// failed counts a failed poll. Once the outage threshold is reached the
// display falls back to Not Playing, a single time per outage.
func (p *Poller) failed(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	p.failures++
	if p.failures != p.outage {
		return
	}

	p.logger.Warn("Source unreachable, showing nothing playing", zap.Int("failures", p.failures))
	hadLast := p.hasLast
	p.hasLast = false
	p.lastName = ""

	if err := p.out.Send(ctx, domain.TrackChanged{Changed: hadLast}); err != nil {
		p.logger.Warn("Failed to send event", zap.Error(err))
	}
}

// fetch reads the source and, when needed, the cover. It leaves the poller's
// memory untouched so a retried cycle sees the same previous state; only
// failed resets it after a sustained outage.
func (p *Poller) fetch(ctx context.Context) (snapshot, error) {
	playing, err := p.source.CurrentlyPlaying(ctx)
	switch {
	case errors.Is(err, domain.ErrMalformed):
		p.logger.Warn("Malformed playback state, treating as nothing playing", zap.Error(err))
		return snapshot{}, nil
	case err != nil:
		return snapshot{}, err
	case playing == nil:
		return snapshot{}, nil
	}

	changed := !p.hasLast || playing.Track.Name != p.lastName
	art := p.art

	switch url := playing.Track.ArtURL(); {
	case url == "":
		art = nil
	case art == nil || changed:
		art, err = p.loader.Load(ctx, url)
		if errors.Is(err, domain.ErrUnsupportedEncoding) {
			return snapshot{}, backoff.Permanent(err)
		}
		if err != nil {
			return snapshot{}, fmt.Errorf("load art: %w", err)
		}
	}

	return snapshot{playing: playing, art: art, changed: changed}, nil
}

// publish sends the snapshot and paces the loop until the next poll
func (p *Poller) publish(ctx context.Context, snap snapshot) error {
	if snap.playing == nil {
		hadLast := p.hasLast
		p.hasLast = false
		p.lastName = ""

		if err := p.out.Send(ctx, domain.TrackChanged{Changed: hadLast}); err != nil {
			p.logger.Warn("Failed to send event", zap.Error(err))
		}
		return sleep(ctx, p.idleDelay)
	}

	track := snap.playing.Track
	p.hasLast = true
	p.lastName = track.Name
	p.art = snap.art

	if snap.changed {
		p.logger.Info("Now playing",
			zap.String("track", track.Name),
			zap.String("artist", track.ArtistNames()),
			zap.Int("duration", track.Duration))
	}

	if err := p.out.Send(ctx, domain.TrackChanged{
		Playing: snap.playing,
		Art:     snap.art,
		Changed: snap.changed,
	}); err != nil {
		p.logger.Warn("Failed to send event", zap.Error(err))
	}

	// Estimate progress between polls; leave early once the track is over
	for i := 1; i <= p.ticks; i++ {
		if err := sleep(ctx, p.tickEvery); err != nil {
			return err
		}
		if snap.playing.ProgressSecs+i > track.Duration {
			break
		}
		if err := p.out.Send(ctx, domain.ProgressTick{Delta: i}); err != nil {
			p.logger.Debug("Progress tick not delivered", zap.Error(err))
		}
	}
	return nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
