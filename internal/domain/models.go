package domain

import (
	"fmt"
	"strings"
)

// SimpleArtist is a credited performer of a track
type SimpleArtist struct {
	// Name of the artist as displayed
	Name string `json:"name"`
	// URL is an optional external link, empty when absent
	URL string `json:"url,omitempty"`
}

// SimpleTrack describes the currently playing track
type SimpleTrack struct {
	// Name is the track title
	Name string `json:"name"`
	// Artists in credit order
	Artists []SimpleArtist `json:"artists"`
	// ImageURL references the full-size cover image, empty when absent
	ImageURL string `json:"imageUrl,omitempty"`
	// SmallURL references a pre-scaled thumbnail, empty when absent
	SmallURL string `json:"smallUrl,omitempty"`
	// URL is an optional external link to the track
	URL string `json:"url,omitempty"`
	// Duration in whole seconds
	Duration int `json:"duration"`
}

// ArtURL returns the best cover reference, preferring the full-size image
func (t SimpleTrack) ArtURL() string {
	if t.ImageURL != "" {
		return t.ImageURL
	}
	return t.SmallURL
}

// ArtistNames joins artist names for display
func (t SimpleTrack) ArtistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// Playing is a full playback snapshot. A new poll supersedes it wholesale.
type Playing struct {
	Device       Device           `json:"device"`
	Context      *PlaybackContext `json:"context,omitempty"`
	Repeat       RepeatState      `json:"repeat"`
	Shuffled     bool             `json:"shuffled"`
	Track        SimpleTrack      `json:"playing"`
	ProgressSecs int              `json:"progressSecs"`
}

// Device is the active output device
type Device struct {
	ID               string     `json:"id,omitempty"`
	IsActive         bool       `json:"is_active"`
	IsPrivateSession bool       `json:"is_private_session"`
	IsRestricted     bool       `json:"is_restricted"`
	Name             string     `json:"name"`
	Type             DeviceType `json:"type"`
	VolumePercent    *int       `json:"volume_percent,omitempty"`
}

// RepeatState is the player's repeat mode
type RepeatState string

const (
	RepeatOff     RepeatState = "off"
	RepeatTrack   RepeatState = "track"
	RepeatContext RepeatState = "context"
)

// UnmarshalText rejects unknown repeat modes
func (r *RepeatState) UnmarshalText(text []byte) error {
	switch s := RepeatState(text); s {
	case RepeatOff, RepeatTrack, RepeatContext:
		*r = s
		return nil
	default:
		return fmt.Errorf("unknown repeat state %q", string(text))
	}
}

// DeviceType classifies the output device
type DeviceType string

const (
	DeviceComputer    DeviceType = "Computer"
	DeviceTablet      DeviceType = "Tablet"
	DeviceSmartphone  DeviceType = "Smartphone"
	DeviceSpeaker     DeviceType = "Speaker"
	DeviceTV          DeviceType = "TV"
	DeviceAVR         DeviceType = "AVR"
	DeviceSTB         DeviceType = "STB"
	DeviceAudioDongle DeviceType = "AudioDongle"
	DeviceGameConsole DeviceType = "GameConsole"
	DeviceCastVideo   DeviceType = "CastVideo"
	DeviceCastAudio   DeviceType = "CastAudio"
	DeviceAutomobile  DeviceType = "Automobile"
	DeviceUnknown     DeviceType = "Unknown"
)

var _deviceTypes = []DeviceType{
	DeviceComputer, DeviceTablet, DeviceSmartphone, DeviceSpeaker,
	DeviceTV, DeviceAVR, DeviceSTB, DeviceAudioDongle, DeviceGameConsole,
	DeviceCastVideo, DeviceCastAudio, DeviceAutomobile, DeviceUnknown,
}

// UnmarshalText matches case-insensitively ("Tv" and "TV" are the same),
// mapping anything unrecognised to DeviceUnknown.
func (d *DeviceType) UnmarshalText(text []byte) error {
	for _, t := range _deviceTypes {
		if strings.EqualFold(string(t), string(text)) {
			*d = t
			return nil
		}
	}
	*d = DeviceUnknown
	return nil
}

// ContextType is the kind of collection playback was started from
type ContextType string

const (
	ContextArtist                 ContextType = "artist"
	ContextAlbum                  ContextType = "album"
	ContextTrack                  ContextType = "track"
	ContextPlaylist               ContextType = "playlist"
	ContextUser                   ContextType = "user"
	ContextShow                   ContextType = "show"
	ContextEpisode                ContextType = "episode"
	ContextCollection             ContextType = "collection"
	ContextCollectionYourEpisodes ContextType = "collectionyourepisodes"
)

// PlaybackContext is the collection playback was started from
type PlaybackContext struct {
	URI          string            `json:"uri"`
	Href         string            `json:"href"`
	ExternalURLs map[string]string `json:"external_urls,omitempty"`
	Type         ContextType       `json:"type"`
}

// Encoding is the container format of fetched artwork.
// It is resolved once by the fetcher; nothing downstream inspects content types.
type Encoding int

const (
	EncodingJPEG Encoding = iota + 1
	EncodingPNG
)

func (e Encoding) String() string {
	switch e {
	case EncodingJPEG:
		return "jpeg"
	case EncodingPNG:
		return "png"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Artwork is encoded cover data together with its resolved encoding
type Artwork struct {
	Data     []byte
	Encoding Encoding
}
