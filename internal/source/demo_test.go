package source

import (
	"context"
	"testing"
	"time"
)

func TestDemoSource_Cycles(t *testing.T) {
	src := NewDemoSource()
	start := src.start

	tests := []struct {
		name         string
		elapsed      time.Duration
		wantTrack    string
		wantProgress int
	}{
		{name: "Start", elapsed: 0, wantTrack: "Intro", wantProgress: 0},
		{name: "Within first", elapsed: 19 * time.Second, wantTrack: "Intro", wantProgress: 19},
		{name: "Second track", elapsed: 25 * time.Second, wantTrack: _demoTracks[1].Name, wantProgress: 5},
		{name: "Wraps around", elapsed: 115*time.Second + 500*time.Millisecond, wantTrack: "Intro", wantProgress: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src.now = func() time.Time { return start.Add(tt.elapsed) }
			got, err := src.CurrentlyPlaying(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Track.Name != tt.wantTrack || got.ProgressSecs != tt.wantProgress {
				t.Errorf("got %q at %d, want %q at %d", got.Track.Name, got.ProgressSecs, tt.wantTrack, tt.wantProgress)
			}
			if got.ProgressSecs > got.Track.Duration {
				t.Errorf("progress %d past duration %d", got.ProgressSecs, got.Track.Duration)
			}
		})
	}
}
