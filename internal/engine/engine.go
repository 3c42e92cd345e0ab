package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/kana"
	"github.com/genricoloni/nowplaying/internal/screen"
	"github.com/genricoloni/nowplaying/internal/scroll"
	"go.uber.org/zap"
)

// Inbox is the receiving side of the mailbox
type Inbox interface {
	Receive() <-chan domain.Event
}

// Engine owns everything on screen. It is single-threaded: all state is
// touched only from the goroutine running the loop (or the caller of Handle
// when no loop runs).
type Engine struct {
	logger     *zap.Logger
	display    domain.Display
	inbox      Inbox
	normalizer *kana.Normalizer
	now        func() time.Time

	playing *domain.Playing
	art     []byte
	lines   screen.Lines
	scroll  *scroll.Machine

	done chan struct{}
}

// NewEngine creates a new render engine
func NewEngine(
	logger *zap.Logger,
	cfg *config.AppConfig,
	display domain.Display,
	inbox Inbox,
	normalizer *kana.Normalizer,
) *Engine {
	return &Engine{
		logger:     logger,
		display:    display,
		inbox:      inbox,
		normalizer: normalizer,
		now:        time.Now,
		scroll:     scroll.New(cfg.ScrollCooldown),
		done:       make(chan struct{}),
	}
}

// Start draws the placeholder and launches the event loop in a goroutine.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...")

	if err := screen.NotPlaying(e.display); err != nil {
		return fmt.Errorf("initial draw failed: %w", err)
	}

	go e.runLoop(ctx)
	return nil
}

// runLoop drains the mailbox in order. Waiting on the channel parks the
// goroutine, so no yield sleep is needed between polls.
func (e *Engine) runLoop(ctx context.Context) {
	defer close(e.done)
	events := e.inbox.Receive()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return
		case ev := <-events:
			e.Handle(ev)
		}
	}
}

// Stop waits for the loop to exit. The loop's context must be cancelled
// first.
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("engine did not stop: %w", ctx.Err())
	}
}

// Handle applies a single event and issues exactly the draws it requires
func (e *Engine) Handle(ev domain.Event) {
	switch ev := ev.(type) {
	case domain.TrackChanged:
		e.handleTrackChanged(ev)
	case domain.ProgressTick:
		e.handleProgressTick(ev)
	case domain.ScrollTick:
		e.handleScrollTick()
	default:
		e.logger.Warn("Unknown event ignored", zap.String("type", fmt.Sprintf("%T", ev)))
	}
}

func (e *Engine) handleTrackChanged(ev domain.TrackChanged) {
	if ev.Playing == nil {
		e.logger.Info("Nothing playing")
		e.playing = nil
		e.art = nil
		e.lines = screen.Lines{}
		e.scroll.Reset(e.now(), 0, 0)
		e.draw("not playing", screen.NotPlaying(e.display))
		return
	}

	e.playing = ev.Playing
	if ev.Changed {
		track := ev.Playing.Track
		e.logger.Info("Track changed",
			zap.String("track", track.Name),
			zap.String("artist", track.ArtistNames()),
			zap.Bool("art", ev.Art != nil))

		e.art = ev.Art
		e.lines = screen.NewLines(track, e.normalizer)
		e.scroll.Reset(e.now(), e.lines.Title.ScrollWidth, e.lines.Artist.ScrollWidth)

		e.draw("album cover", screen.AlbumCover(e.display, e.art))
		e.draw("text", screen.TitleAndArtist(e.display, e.lines, 0, 0))
	}

	e.drawProgress(0)
}

// handleProgressTick shows an estimate past the last poll. The stored
// progress is left alone; the next poll is authoritative.
func (e *Engine) handleProgressTick(ev domain.ProgressTick) {
	if e.playing == nil {
		return
	}
	e.drawProgress(ev.Delta)
}

func (e *Engine) handleScrollTick() {
	if e.playing == nil {
		return
	}
	if !e.scroll.Tick(e.now()) {
		return
	}
	title, artist := e.scroll.Shifts()
	e.draw("text", screen.TitleAndArtist(e.display, e.lines, title, artist))
}

func (e *Engine) drawProgress(delta int) {
	e.draw("progress", screen.Progress(e.display,
		e.playing.ProgressSecs+delta, e.playing.Track.Duration))
}

// draw logs display failures; nothing about them is ever rendered
func (e *Engine) draw(what string, err error) {
	if err != nil {
		e.logger.Error("Failed to draw", zap.String("region", what), zap.Error(err))
	}
}

// Playing returns the active playback state, or nil
func (e *Engine) Playing() *domain.Playing { return e.playing }

// ScrollState returns the marquee state
func (e *Engine) ScrollState() scroll.State { return e.scroll.State() }
