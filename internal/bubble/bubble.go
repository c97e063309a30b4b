// Package bubble creates the transient entities the player pops.
package bubble

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Size and position bounds. Sizes are nominal pixels; the renderer maps
// them to terminal cells.
const (
	MinSize = 28.0

	// Bubbles stay within [0, MaxXPercent) so the rendered body never
	// clips the right edge.
	MaxXPercent = 92.0

	// Fixed saturation/lightness so random hues stay readable.
	saturation = 0.65
	lightness  = 0.55

	baseDurationSec = 6.0
	minDurationSec  = 2.2
)

// Bubble is an immutable descriptor for one rising bubble. Lifecycle
// state (live, popped, expired) is owned by the session controller.
type Bubble struct {
	ID       int
	Key      rune
	SizePx   float64
	XPercent float64
	Hue      float64
	Duration time.Duration
}

// Color returns the bubble's render color as 8-bit RGB.
func (b Bubble) Color() (r, g, bl uint8) {
	return colorful.Hsl(b.Hue, saturation, lightness).RGB255()
}

// MaxSize returns the largest bubble size for the given viewport width.
func MaxSize(viewportWidth int) float64 {
	m := 0.08 * float64(viewportWidth)
	if m < 48 {
		m = 48
	}
	return m
}

// PointsFor awards more points for smaller bubbles.
func PointsFor(sizePx float64) int {
	switch {
	case sizePx <= 34:
		return 3
	case sizePx <= 44:
		return 2
	default:
		return 1
	}
}

// Factory produces bubbles with randomized size, position, hue and rise
// duration. It owns the RNG (injected so tests can seed it) and the
// monotonic ID counter; IDs never repeat within a factory's lifetime.
type Factory struct {
	rng    *rand.Rand
	nextID int
}

// NewFactory creates a factory backed by rng.
func NewFactory(rng *rand.Rand) *Factory {
	return &Factory{rng: rng, nextID: 1}
}

// New creates a bubble sized for the viewport. Rise duration shortens as
// score grows (capped) and lengthens with bubble size, floored at 2.2s.
// The key label is assigned separately by the controller.
func (f *Factory) New(viewportWidth, score int) Bubble {
	maxSize := MaxSize(viewportWidth)
	size := MinSize + f.rng.Float64()*(maxSize-MinSize)

	speedFactor := 1 + min(1.4, float64(score)/40)
	sizeFactor := 1 + (size-MinSize)/(maxSize-MinSize+1)
	durSec := baseDurationSec / (speedFactor*0.7 + f.rng.Float64()*0.6) * sizeFactor
	if durSec < minDurationSec {
		durSec = minDurationSec
	}

	b := Bubble{
		ID:       f.nextID,
		SizePx:   size,
		XPercent: f.rng.Float64() * MaxXPercent,
		Hue:      f.rng.Float64() * 360,
		Duration: time.Duration(durSec * float64(time.Second)),
	}
	f.nextID++
	return b
}
