package display

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const snapshotFilename = "frame.png"

// SnapshotWriter periodically saves the in-memory screen as a PNG so the
// simulator's output can be watched with any image viewer
type SnapshotWriter struct {
	logger   *zap.Logger
	screen   *Memory
	dir      string
	scale    int
	interval time.Duration
	lastGen  uint64
}

// NewSnapshotWriter writes frames of screen into dir, upscaled by scale
func NewSnapshotWriter(logger *zap.Logger, screen *Memory, dir string, scale int, interval time.Duration) *SnapshotWriter {
	return &SnapshotWriter{
		logger:   logger,
		screen:   screen,
		dir:      dir,
		scale:    max(scale, 1),
		interval: interval,
	}
}

// Run writes a frame whenever the screen changed since the last check.
// It blocks until ctx is cancelled.
func (w *SnapshotWriter) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.WriteIfChanged(); err != nil {
				w.logger.Warn("Failed to write snapshot", zap.Error(err))
			}
		}
	}
}

// WriteIfChanged saves the current frame if the screen has been drawn to
// since the previous write. It returns the path written, or "" if unchanged.
func (w *SnapshotWriter) WriteIfChanged() (string, error) {
	img, gen := w.screen.Snapshot()
	if gen == w.lastGen {
		return "", nil
	}

	b := img.Bounds()
	scaled := imaging.Resize(img, b.Dx()*w.scale, b.Dy()*w.scale, imaging.NearestNeighbor)

	outputPath := filepath.Join(w.dir, snapshotFilename)
	tmp, err := os.CreateTemp(w.dir, ".frame-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := imaging.Encode(tmp, scaled, imaging.PNG); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return "", fmt.Errorf("failed to publish snapshot: %w", err)
	}

	w.lastGen = gen
	w.logger.Debug("Snapshot written", zap.String("path", outputPath), zap.Uint64("generation", gen))
	return outputPath, nil
}
