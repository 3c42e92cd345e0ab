package source

import (
	"context"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
)

// _demoTracks exercise every rendering path: fitting text, an overflowing
// title, an overflowing artist line and katakana normalization
var _demoTracks = []domain.SimpleTrack{
	{
		Name:     "Intro",
		Artists:  []domain.SimpleArtist{{Name: "The xx"}},
		Duration: 20,
	},
	{
		Name:     "A title long enough to need the marquee",
		Artists:  []domain.SimpleArtist{{Name: "Demo Band"}},
		Duration: 40,
	},
	{
		Name:     "ブルーバード・デラックス",
		Artists:  []domain.SimpleArtist{{Name: "イキモノガカリ"}},
		Duration: 30,
	},
	{
		Name: "Duet",
		Artists: []domain.SimpleArtist{
			{Name: "First Performer"},
			{Name: "Second Performer"},
			{Name: "Orchestra"},
		},
		Duration: 25,
	},
}

// DemoSource plays a fixed playlist on a loop, advancing with the clock
type DemoSource struct {
	now    func() time.Time
	start  time.Time
	tracks []domain.SimpleTrack
}

// NewDemoSource starts the playlist now
func NewDemoSource() *DemoSource {
	return &DemoSource{
		now:    time.Now,
		start:  time.Now(),
		tracks: _demoTracks,
	}
}

// CurrentlyPlaying returns the track under the playhead
func (s *DemoSource) CurrentlyPlaying(ctx context.Context) (*domain.Playing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, t := range s.tracks {
		total += t.Duration
	}
	if total == 0 {
		return nil, nil
	}

	pos := int(s.now().Sub(s.start)/time.Second) % total
	for _, t := range s.tracks {
		if pos < t.Duration {
			return &domain.Playing{
				Device: domain.Device{
					ID:       "demo",
					IsActive: true,
					Name:     "Demo",
					Type:     domain.DeviceComputer,
				},
				Repeat:       domain.RepeatContext,
				Track:        t,
				ProgressSecs: pos,
			}, nil
		}
		pos -= t.Duration
	}
	return nil, nil
}
