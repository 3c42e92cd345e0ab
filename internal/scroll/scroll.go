// Package scroll tracks the marquee offsets of the title and artist lines.
package scroll

import "time"

// Field identifies a text line
type Field int

const (
	Title Field = iota
	Artist
)

func (f Field) other() Field { return 1 - f }

// State of the marquee
type State int

const (
	Idle State = iota
	ScrollingTitle
	ScrollingArtist
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ScrollingTitle:
		return "scrolling-title"
	case ScrollingArtist:
		return "scrolling-artist"
	default:
		return "unknown"
	}
}

func scrolling(f Field) State {
	if f == Title {
		return ScrollingTitle
	}
	return ScrollingArtist
}

// Machine advances at most one field at a time. A field with width zero fits
// on screen and never scrolls. After a reset or a completed cycle nothing
// moves until the cool-down has elapsed, measured lazily on each Tick.
type Machine struct {
	cooldown time.Duration
	state    State
	next     Field
	widths   [2]int
	shifts   [2]int
	since    time.Time
}

// New returns an idle machine with nothing to scroll
func New(cooldown time.Duration) *Machine {
	return &Machine{cooldown: cooldown}
}

// Reset starts over for a new track. Widths are the full rendered widths of
// the oversized lines, or zero for lines that fit.
func (m *Machine) Reset(now time.Time, titleWidth, artistWidth int) {
	m.widths = [2]int{max(titleWidth, 0), max(artistWidth, 0)}
	m.shifts = [2]int{}
	m.state = Idle
	m.since = now
	m.next = Title
	if m.widths[Title] == 0 && m.widths[Artist] > 0 {
		m.next = Artist
	}
}

// Tick advances the active field by one pixel. It reports whether the text
// must be redrawn.
func (m *Machine) Tick(now time.Time) bool {
	if m.state == Idle {
		if m.widths[m.next] == 0 || now.Sub(m.since) < m.cooldown {
			return false
		}
		m.state = scrolling(m.next)
	}

	f := m.active()
	m.shifts[f]++
	if m.shifts[f] >= m.widths[f] {
		// Full cycle: the text is back where it started
		m.shifts[f] = 0
		m.state = Idle
		m.since = now
		if m.widths[f.other()] > 0 {
			m.next = f.other()
		}
	}
	return true
}

func (m *Machine) active() Field {
	if m.state == ScrollingArtist {
		return Artist
	}
	return Title
}

// State returns the current state
func (m *Machine) State() State { return m.state }

// Shift returns the current offset of f, always in [0, width)
func (m *Machine) Shift(f Field) int { return m.shifts[f] }

// Shifts returns the title and artist offsets
func (m *Machine) Shifts() (title, artist int) { return m.shifts[Title], m.shifts[Artist] }
