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

// AppOptions is the daemon's dependency graph
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
	fx.Provide(
		newLogger,
		newDisplay,
	),
	app.Module,
)

func main() {
	a := fx.New(AppOptions)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx); err != nil {
		panic(err)
	}

	// Either a signal or a fatal producer error ends the run
	exitCode := 0
	select {
	case <-ctx.Done():
	case sig := <-a.Wait():
		exitCode = sig.ExitCode
	}

	if err := a.Stop(context.Background()); err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}

// newLogger creates the production logger. Its level follows the
// configuration once it is loaded.
func newLogger() (*zap.Logger, zap.AtomicLevel, error) {
	cfg := zap.NewProductionConfig()
	logger, err := cfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, cfg.Level, nil
}

// newDisplay opens the configured framebuffer for the application's lifetime
func newDisplay(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig) (domain.Display, error) {
	fb, err := display.OpenFramebuffer(logger, cfg.Framebuffer)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(fb.Close))
	return fb, nil
}
