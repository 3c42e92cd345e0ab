package source

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	_mprisPrefix  = "org.mpris.MediaPlayer2."
	_mprisPath    = "/org/mpris/MediaPlayer2"
	_propIdentity = "org.mpris.MediaPlayer2.Identity"
	_propStatus   = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
	_propMetadata = "org.mpris.MediaPlayer2.Player.Metadata"
	_propPosition = "org.mpris.MediaPlayer2.Player.Position"
	_propLoop     = "org.mpris.MediaPlayer2.Player.LoopStatus"
	_propShuffle  = "org.mpris.MediaPlayer2.Player.Shuffle"
)

// MprisSource reads playback state from a desktop media player over the
// D-Bus session bus
type MprisSource struct {
	logger    *zap.Logger
	preferred string
	dial      func() (DBusClient, error)

	mu   sync.Mutex
	conn DBusClient
}

// NewMprisSource creates a source preferring the player whose bus name ends
// in preferred (e.g. "spotify"). An empty preferred picks any playing player.
func NewMprisSource(logger *zap.Logger, preferred string) *MprisSource {
	return &MprisSource{
		logger:    logger,
		preferred: preferred,
		dial: func() (DBusClient, error) {
			return NewStdDBusClient()
		},
	}
}

// CurrentlyPlaying returns the state of the chosen player, or nil when no
// player is playing
func (s *MprisSource) CurrentlyPlaying(ctx context.Context) (*domain.Playing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := s.connect()
	if err != nil {
		return nil, fmt.Errorf("%w: session bus connection failed: %v", domain.ErrTransient, err)
	}

	player, err := s.choosePlayer(conn)
	if err != nil {
		s.reset()
		return nil, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	if player == "" {
		return nil, nil
	}

	variant, err := conn.GetProperty(player, _mprisPath, _propMetadata)
	if err != nil {
		s.reset()
		return nil, fmt.Errorf("%w: failed to get metadata: %v", domain.ErrTransient, err)
	}
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: metadata is %T, not a map", domain.ErrMalformed, variant.Value())
	}

	track, err := parseMetadata(metadata)
	if err != nil {
		return nil, err
	}

	playing := &domain.Playing{
		Device: domain.Device{
			ID:       player,
			IsActive: true,
			Name:     s.stringProp(conn, player, _propIdentity, strings.TrimPrefix(player, _mprisPrefix)),
			Type:     domain.DeviceComputer,
		},
		Repeat:       loopToRepeat(s.stringProp(conn, player, _propLoop, "None")),
		Shuffled:     s.boolProp(conn, player, _propShuffle),
		Track:        track,
		ProgressSecs: s.positionSecs(conn, player),
	}

	s.logger.Debug("MPRIS state read",
		zap.String("player", player),
		zap.String("title", track.Name),
		zap.Int("progress", playing.ProgressSecs))
	return playing, nil
}

// Close releases the bus connection
func (s *MprisSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *MprisSource) connect() (DBusClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn, nil
	}
	conn, err := s.dial()
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return conn, nil
}

// reset drops the connection so the next poll redials
func (s *MprisSource) reset() {
	if err := s.Close(); err != nil {
		s.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
	}
}

// choosePlayer returns the bus name of the preferred player if it is
// playing, else the first playing one, else ""
func (s *MprisSource) choosePlayer(conn DBusClient) (string, error) {
	names, err := conn.ListNames()
	if err != nil {
		return "", fmt.Errorf("failed to list bus names: %w", err)
	}

	var players []string
	for _, name := range names {
		if !strings.HasPrefix(name, _mprisPrefix) {
			continue
		}
		if s.isPreferred(name) {
			players = append([]string{name}, players...)
		} else {
			players = append(players, name)
		}
	}

	for _, name := range players {
		variant, err := conn.GetProperty(name, _mprisPath, _propStatus)
		if err != nil {
			s.logger.Debug("Failed to get playback status", zap.String("player", name), zap.Error(err))
			continue
		}
		if status, _ := variant.Value().(string); status == "Playing" {
			return name, nil
		}
	}
	return "", nil
}

// isPreferred matches "org.mpris.MediaPlayer2.vlc" and its instance names
// such as "org.mpris.MediaPlayer2.vlc.instance42"
func (s *MprisSource) isPreferred(name string) bool {
	if s.preferred == "" {
		return false
	}
	want := _mprisPrefix + s.preferred
	return name == want || strings.HasPrefix(name, want+".")
}

func (s *MprisSource) stringProp(conn DBusClient, player, prop, def string) string {
	variant, err := conn.GetProperty(player, _mprisPath, prop)
	if err != nil {
		return def
	}
	if v, ok := variant.Value().(string); ok && v != "" {
		return v
	}
	return def
}

func (s *MprisSource) boolProp(conn DBusClient, player, prop string) bool {
	variant, err := conn.GetProperty(player, _mprisPath, prop)
	if err != nil {
		return false
	}
	v, _ := variant.Value().(bool)
	return v
}

func (s *MprisSource) positionSecs(conn DBusClient, player string) int {
	variant, err := conn.GetProperty(player, _mprisPath, _propPosition)
	if err != nil {
		return 0
	}
	us, ok := microseconds(variant.Value())
	if !ok || us < 0 {
		return 0
	}
	return int(us / 1_000_000)
}

// parseMetadata converts an MPRIS metadata map into a track
func parseMetadata(metadata map[string]dbus.Variant) (domain.SimpleTrack, error) {
	var track domain.SimpleTrack

	if v, ok := metadata["xesam:title"]; ok {
		title, ok := v.Value().(string)
		if !ok {
			return track, fmt.Errorf("%w: xesam:title is %T", domain.ErrMalformed, v.Value())
		}
		track.Name = title
	}

	// xesam:artist should be a list, but some players send a single string
	if v, ok := metadata["xesam:artist"]; ok {
		switch artists := v.Value().(type) {
		case []string:
			for _, a := range artists {
				track.Artists = append(track.Artists, domain.SimpleArtist{Name: a})
			}
		case string:
			track.Artists = []domain.SimpleArtist{{Name: artists}}
		default:
			return track, fmt.Errorf("%w: xesam:artist is %T", domain.ErrMalformed, v.Value())
		}
	}

	if v, ok := metadata["mpris:artUrl"]; ok {
		if artURL, ok := v.Value().(string); ok {
			track.ImageURL = artURL
		}
	}

	if v, ok := metadata["xesam:url"]; ok {
		if u, ok := v.Value().(string); ok {
			track.URL = u
		}
	}

	if v, ok := metadata["mpris:length"]; ok {
		us, ok := microseconds(v.Value())
		if !ok {
			return track, fmt.Errorf("%w: mpris:length is %T", domain.ErrMalformed, v.Value())
		}
		if us > 0 {
			track.Duration = int(us / 1_000_000)
		}
	}

	return track, nil
}

// microseconds accepts the integer widths players use in practice
func microseconds(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func loopToRepeat(status string) domain.RepeatState {
	switch status {
	case "Track":
		return domain.RepeatTrack
	case "Playlist":
		return domain.RepeatContext
	default:
		return domain.RepeatOff
	}
}
