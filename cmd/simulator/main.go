// Command simulator renders the display into PNG frames on disk instead of a
// framebuffer, for development on a desktop.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/nowplaying/internal/app"
	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/display"
	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the simulator's dependency graph
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
	fx.Provide(
		newLogger,
		fx.Annotate(
			display.NewMemory,
			fx.As(fx.Self()),
			fx.As(new(domain.Display)),
		),
		newSnapshotWriter,
	),
	app.Module,
	fx.Invoke(registerSnapshots),
)

func main() {
	// Without a configured source the simulator plays its demo playlist
	if _, ok := os.LookupEnv("NOWPLAYING_SOURCE"); !ok {
		_ = os.Setenv("NOWPLAYING_SOURCE", config.SourceDemo)
	}

	a := fx.New(AppOptions)
	if err := a.Start(context.Background()); err != nil {
		panic(err)
	}

	// Nothing needs draining; quit on the first signal
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case <-signals:
		os.Exit(0)
	case sig := <-a.Wait():
		_ = a.Stop(context.Background())
		os.Exit(sig.ExitCode)
	}
}

// newLogger creates a human-readable development logger
func newLogger() (*zap.Logger, zap.AtomicLevel, error) {
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, cfg.Level, nil
}

func newSnapshotWriter(logger *zap.Logger, screen *display.Memory, cfg *config.AppConfig) *display.SnapshotWriter {
	return display.NewSnapshotWriter(logger, screen, cfg.OutputDir, cfg.SnapshotScale, cfg.SnapshotInterval)
}

// registerSnapshots writes frames for the application's lifetime
func registerSnapshots(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig, w *display.SnapshotWriter) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("Writing frames", zap.String("dir", cfg.OutputDir))
			go func() {
				defer close(done)
				if err := w.Run(ctx); err != nil {
					logger.Error("Snapshot writer failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
