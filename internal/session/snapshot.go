package session

import (
	"time"

	"github.com/Kalyan9AI/blubblegame/internal/bubble"
)

// Snapshot is an immutable view of the session for rendering. The
// controller publishes a fresh snapshot after every event; renderers on
// other goroutines read it without locks.
type Snapshot struct {
	Phase     Phase
	Score     int
	Remaining int
	Best      int
	Muted     bool
	Bubbles   []BubbleView
}

// BubbleView is a live bubble plus its spawn time, so renderers can
// animate the rise without asking the controller.
type BubbleView struct {
	bubble.Bubble
	SpawnedAt time.Time
}

// Progress returns how far the bubble has risen in [0, 1].
func (v BubbleView) Progress(now time.Time) float64 {
	if v.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(v.SpawnedAt)) / float64(v.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// BubbleByKey returns the oldest live bubble labeled key.
func (s *Snapshot) BubbleByKey(key rune) (id int, ok bool) {
	for _, v := range s.Bubbles {
		if v.Key == key {
			return v.ID, true
		}
	}
	return 0, false
}
