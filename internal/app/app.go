// Package app wires the render engine, its producers and their collaborators
// into an fx application. The binaries add a domain.Display.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/engine"
	"github.com/genricoloni/nowplaying/internal/fetcher"
	"github.com/genricoloni/nowplaying/internal/kana"
	"github.com/genricoloni/nowplaying/internal/mailbox"
	"github.com/genricoloni/nowplaying/internal/processor"
	"github.com/genricoloni/nowplaying/internal/producer"
	"github.com/genricoloni/nowplaying/internal/source"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides everything except the display and the logger
var Module = fx.Module("nowplaying",
	fx.Provide(
		config.NewAppConfig,
		kana.NewNormalizer,
		fx.Annotate(
			NewMailbox,
			fx.As(new(engine.Inbox)),
			fx.As(new(domain.Emitter)),
		),
		NewSource,
		fx.Annotate(fetcher.NewHTTPFetcher, fx.As(new(domain.Fetcher))),
		fx.Annotate(processor.NewCoverProcessor, fx.As(new(domain.ArtProcessor))),
		fx.Annotate(processor.NewLoader, fx.As(new(domain.ArtLoader))),
		engine.NewEngine,
		producer.NewPoller,
		producer.NewScrollTicker,
	),
	fx.Invoke(ApplyLogLevel, RegisterHooks),
)

// NewMailbox creates the event queue from the configured size and policy
func NewMailbox(logger *zap.Logger, cfg *config.AppConfig) (*mailbox.Mailbox, error) {
	policy, err := mailbox.ParsePolicy(cfg.MailboxPolicy)
	if err != nil {
		return nil, err
	}
	return mailbox.New(logger, cfg.MailboxSize, policy), nil
}

// NewSource returns the configured playback source
func NewSource(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig) (domain.Source, error) {
	switch cfg.Source {
	case config.SourceHTTP:
		return source.NewHTTPSource(logger, cfg.SourceURL), nil
	case config.SourceMpris:
		src := source.NewMprisSource(logger, cfg.MprisPlayer)
		lc.Append(fx.StopHook(src.Close))
		return src, nil
	case config.SourceDemo:
		return source.NewDemoSource(), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// ApplyLogLevel sets the configured level on the shared logger
func ApplyLogLevel(level zap.AtomicLevel, cfg *config.AppConfig) {
	level.SetLevel(cfg.LogLevel)
}

// RegisterHooks runs the engine and producers for the application's lifetime.
// A producer failing for good shuts the application down with exit code 1.
func RegisterHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *zap.Logger,
	eng *engine.Engine,
	poller *producer.Poller,
	ticker *producer.ScrollTicker,
) {
	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Now playing display started")

			// Producers outlive OnStart, so they get their own context
			runCtx, runCancel := context.WithCancel(context.Background())
			cancel = runCancel

			if err := eng.Start(runCtx); err != nil {
				runCancel()
				return err
			}

			wg.Add(2)
			go func() {
				defer wg.Done()
				if err := poller.Run(runCtx); err != nil {
					logger.Error("Poller failed", zap.Error(err))
					if err := shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
						logger.Error("Failed to request shutdown", zap.Error(err))
					}
				}
			}()
			go func() {
				defer wg.Done()
				if err := ticker.Run(runCtx); err != nil {
					logger.Error("Scroll ticker failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			if cancel == nil {
				return nil
			}
			cancel()

			err := eng.Stop(ctx)
			return multierr.Append(err, wait(ctx, &wg))
		},
	})
}

func wait(ctx context.Context, wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("producers did not stop: %w", ctx.Err())
	}
}
