package app

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/genricoloni/nowplaying/internal/display"
	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/layout"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func testOptions(screen *display.Memory) fx.Option {
	return fx.Options(
		fx.NopLogger,
		fx.Supply(zap.NewNop(), zap.NewAtomicLevel()),
		fx.Provide(func() domain.Display { return screen }),
		Module,
	)
}

func TestModuleGraphValidity(t *testing.T) {
	for _, src := range []string{"http", "mpris", "demo"} {
		t.Run(src, func(t *testing.T) {
			t.Setenv("NOWPLAYING_SOURCE", src)
			if err := fx.ValidateApp(testOptions(display.NewMemory())); err != nil {
				t.Errorf("Dependency graph is not valid: %v", err)
			}
		})
	}
}

func TestModule_DemoEndToEnd(t *testing.T) {
	t.Setenv("NOWPLAYING_SOURCE", "demo")

	screen := display.NewMemory()
	drawn := make(chan image.Rectangle, 64)
	screen.OnFill(func(area image.Rectangle) {
		select {
		case drawn <- area:
		default:
		}
	})

	app := fx.New(testOptions(screen))
	if err := app.Start(t.Context()); err != nil {
		t.Fatalf("App failed to start: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case area := <-drawn:
			seen = area == layout.Cover
		case <-deadline:
			t.Fatal("Timeout: the demo track was never drawn")
		}
	}

	if err := app.Stop(t.Context()); err != nil {
		t.Fatalf("App failed to stop: %v", err)
	}
}

func TestModule_UnsupportedArtShutsDown(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/playing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"playing": {"name": "Webp", "imageUrl": "` + server.URL + `/cover.webp", "duration": 60}}`))
	})
	mux.HandleFunc("/cover.webp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("RIFF"))
	})

	t.Setenv("NOWPLAYING_SOURCE", "http")
	t.Setenv("NOWPLAYING_SOURCE_URL", server.URL+"/playing")

	app := fx.New(testOptions(display.NewMemory()))
	if err := app.Start(t.Context()); err != nil {
		t.Fatalf("App failed to start: %v", err)
	}

	select {
	case sig := <-app.Wait():
		if sig.ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", sig.ExitCode)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout: app did not request shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		t.Fatalf("App failed to stop: %v", err)
	}
}

func TestNewMailbox_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("NOWPLAYING_MAILBOX_POLICY", "lossy")
	err := fx.ValidateApp(testOptions(display.NewMemory()))
	if err != nil {
		// Validation only checks the graph; constructors do not run
		t.Fatalf("graph should still be valid: %v", err)
	}

	app := fx.New(testOptions(display.NewMemory()))
	if app.Err() == nil {
		t.Error("expected construction to fail for an unknown mailbox policy")
	}
}
