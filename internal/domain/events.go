package domain

// Event is a message consumed by the render engine.
// The set is closed: TrackChanged, ProgressTick and ScrollTick.
type Event interface {
	isEvent()
}

// TrackChanged carries a fresh poll result.
// A nil Playing means nothing is playing. Art is the pre-converted cover
// pixels, or nil when no cover is available. Changed reports whether the
// track differs from the previous poll.
type TrackChanged struct {
	Playing *Playing
	Art     []byte
	Changed bool
}

// ProgressTick advances the displayed progress by Delta seconds past the
// last polled value without replacing it.
type ProgressTick struct {
	Delta int
}

// ScrollTick advances the marquee by one pixel
type ScrollTick struct{}

func (TrackChanged) isEvent() {}
func (ProgressTick) isEvent() {}
func (ScrollTick) isEvent()   {}
