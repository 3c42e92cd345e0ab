package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/source/mocks"
	"github.com/godbus/dbus/v5"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// props answers GetProperty from a per-player table; missing entries fail
// the way unsupported properties do on the bus
func props(table map[string]map[string]dbus.Variant) func(player, path, prop string) (dbus.Variant, error) {
	return func(player, path, prop string) (dbus.Variant, error) {
		if v, ok := table[player][prop]; ok {
			return v, nil
		}
		return dbus.Variant{}, fmt.Errorf("no property %s on %s", prop, player)
	}
}

func newTestSource(client DBusClient, preferred string) *MprisSource {
	src := NewMprisSource(zap.NewNop(), preferred)
	src.dial = func() (DBusClient, error) { return client, nil }
	return src
}

func TestMprisSource_CurrentlyPlaying(t *testing.T) {
	spotify := "org.mpris.MediaPlayer2.spotify"
	vlc := "org.mpris.MediaPlayer2.vlc.instance42"

	fullMetadata := dbus.MakeVariant(map[string]dbus.Variant{
		"xesam:title":  dbus.MakeVariant("Stairway to Heaven"),
		"xesam:artist": dbus.MakeVariant([]string{"Led Zeppelin", "Jimmy Page"}),
		"mpris:artUrl": dbus.MakeVariant("file:///tmp/cover.jpg"),
		"xesam:url":    dbus.MakeVariant("https://open.example/track/1"),
		"mpris:length": dbus.MakeVariant(int64(482_000_000)),
	})

	tests := []struct {
		name             string
		preferred        string
		names            []string
		table            map[string]map[string]dbus.Variant
		expected         *domain.Playing
		expectedSentinel error
	}{
		{
			name:  "Success - Full state",
			names: []string{"org.freedesktop.DBus", spotify},
			table: map[string]map[string]dbus.Variant{
				spotify: {
					_propStatus:   dbus.MakeVariant("Playing"),
					_propMetadata: fullMetadata,
					_propPosition: dbus.MakeVariant(int64(61_500_000)),
					_propLoop:     dbus.MakeVariant("Playlist"),
					_propShuffle:  dbus.MakeVariant(true),
					_propIdentity: dbus.MakeVariant("Spotify"),
				},
			},
			expected: &domain.Playing{
				Device: domain.Device{ID: spotify, IsActive: true, Name: "Spotify", Type: domain.DeviceComputer},
				Repeat: domain.RepeatContext,
				Track: domain.SimpleTrack{
					Name:     "Stairway to Heaven",
					Artists:  []domain.SimpleArtist{{Name: "Led Zeppelin"}, {Name: "Jimmy Page"}},
					ImageURL: "file:///tmp/cover.jpg",
					URL:      "https://open.example/track/1",
					Duration: 482,
				},
				Shuffled:     true,
				ProgressSecs: 61,
			},
		},
		{
			name:  "Optional properties missing",
			names: []string{vlc},
			table: map[string]map[string]dbus.Variant{
				vlc: {
					_propStatus: dbus.MakeVariant("Playing"),
					_propMetadata: dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title":  dbus.MakeVariant("Local file"),
						"xesam:artist": dbus.MakeVariant("Solo"),
						"mpris:length": dbus.MakeVariant(uint64(10_000_000)),
					}),
				},
			},
			expected: &domain.Playing{
				Device: domain.Device{ID: vlc, IsActive: true, Name: "vlc.instance42", Type: domain.DeviceComputer},
				Repeat: domain.RepeatOff,
				Track: domain.SimpleTrack{
					Name:     "Local file",
					Artists:  []domain.SimpleArtist{{Name: "Solo"}},
					Duration: 10,
				},
			},
		},
		{
			name:      "Preferred player wins",
			preferred: "vlc",
			names:     []string{spotify, vlc},
			table: map[string]map[string]dbus.Variant{
				spotify: {_propStatus: dbus.MakeVariant("Playing"), _propMetadata: fullMetadata},
				vlc: {
					_propStatus:   dbus.MakeVariant("Playing"),
					_propMetadata: dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("From VLC")}),
				},
			},
			expected: &domain.Playing{
				Device: domain.Device{ID: vlc, IsActive: true, Name: "vlc.instance42", Type: domain.DeviceComputer},
				Repeat: domain.RepeatOff,
				Track:  domain.SimpleTrack{Name: "From VLC"},
			},
		},
		{
			name:      "Paused preferred player falls back to a playing one",
			preferred: "vlc",
			names:     []string{vlc, spotify},
			table: map[string]map[string]dbus.Variant{
				vlc: {_propStatus: dbus.MakeVariant("Paused")},
				spotify: {
					_propStatus:   dbus.MakeVariant("Playing"),
					_propMetadata: dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("From Spotify")}),
				},
			},
			expected: &domain.Playing{
				Device: domain.Device{ID: spotify, IsActive: true, Name: "spotify", Type: domain.DeviceComputer},
				Repeat: domain.RepeatOff,
				Track:  domain.SimpleTrack{Name: "From Spotify"},
			},
		},
		{
			name:  "Nothing playing",
			names: []string{spotify},
			table: map[string]map[string]dbus.Variant{
				spotify: {_propStatus: dbus.MakeVariant("Stopped")},
			},
		},
		{
			name:  "No players",
			names: []string{"org.freedesktop.DBus", ":1.42"},
		},
		{
			name:  "Invalid Data - Metadata is Int not Map",
			names: []string{spotify},
			table: map[string]map[string]dbus.Variant{
				spotify: {_propStatus: dbus.MakeVariant("Playing"), _propMetadata: dbus.MakeVariant(12345)},
			},
			expectedSentinel: domain.ErrMalformed,
		},
		{
			name:  "Invalid Data - Title is not a string",
			names: []string{spotify},
			table: map[string]map[string]dbus.Variant{
				spotify: {
					_propStatus:   dbus.MakeVariant("Playing"),
					_propMetadata: dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant(7)}),
				},
			},
			expectedSentinel: domain.ErrMalformed,
		},
		{
			name:  "Invalid Data - Length is text",
			names: []string{spotify},
			table: map[string]map[string]dbus.Variant{
				spotify: {
					_propStatus:   dbus.MakeVariant("Playing"),
					_propMetadata: dbus.MakeVariant(map[string]dbus.Variant{"mpris:length": dbus.MakeVariant("long")}),
				},
			},
			expectedSentinel: domain.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)

			mockClient.EXPECT().ListNames().Return(tt.names, nil)
			mockClient.EXPECT().GetProperty(gomock.Any(), _mprisPath, gomock.Any()).
				DoAndReturn(props(tt.table)).AnyTimes()

			got, err := newTestSource(mockClient, tt.preferred).CurrentlyPlaying(context.Background())

			if tt.expectedSentinel != nil {
				if !errors.Is(err, tt.expectedSentinel) {
					t.Fatalf("expected %v, got %v", tt.expectedSentinel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("playing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMprisSource_BusErrorsReconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockDBusClient(ctrl)
	second := mocks.NewMockDBusClient(ctrl)

	first.EXPECT().ListNames().Return(nil, fmt.Errorf("connection reset"))
	first.EXPECT().Close().Return(nil)
	second.EXPECT().ListNames().Return([]string{}, nil)

	dials := 0
	src := NewMprisSource(zap.NewNop(), "")
	src.dial = func() (DBusClient, error) {
		dials++
		if dials == 1 {
			return first, nil
		}
		return second, nil
	}

	if _, err := src.CurrentlyPlaying(context.Background()); !errors.Is(err, domain.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	got, err := src.CurrentlyPlaying(context.Background())
	if err != nil || got != nil {
		t.Fatalf("expected nothing playing after reconnect, got %v, %v", got, err)
	}
	if dials != 2 {
		t.Errorf("expected 2 dials, got %d", dials)
	}
}

func TestMprisSource_DialFailure(t *testing.T) {
	src := NewMprisSource(zap.NewNop(), "")
	src.dial = func() (DBusClient, error) { return nil, fmt.Errorf("no session bus") }

	if _, err := src.CurrentlyPlaying(context.Background()); !errors.Is(err, domain.ErrTransient) {
		t.Errorf("expected ErrTransient, got %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close without a connection: %v", err)
	}
}
