package bubble

import (
	"math/rand"
	"testing"
	"time"
)

func TestPointsForTiers(t *testing.T) {
	tests := []struct {
		sizePx float64
		want   int
	}{
		{28, 3},
		{30, 3},
		{34, 3},
		{34.5, 2},
		{40, 2},
		{44, 2},
		{44.5, 1},
		{50, 1},
		{80, 1},
	}
	for _, tt := range tests {
		if got := PointsFor(tt.sizePx); got != tt.want {
			t.Errorf("PointsFor(%.1f) = %d, want %d", tt.sizePx, got, tt.want)
		}
	}
}

func TestMaxSizeFloorsAt48(t *testing.T) {
	if got := MaxSize(120); got != 48 {
		t.Errorf("MaxSize(120) = %.1f, want 48", got)
	}
	if got := MaxSize(1000); got != 80 {
		t.Errorf("MaxSize(1000) = %.1f, want 80", got)
	}
}

func TestFactoryRangesAndIDs(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(42)))
	const width = 120
	maxSize := MaxSize(width)

	for i := 1; i <= 500; i++ {
		b := f.New(width, i%80)
		if b.ID != i {
			t.Fatalf("bubble %d: ID = %d, want monotonic", i, b.ID)
		}
		if b.SizePx < MinSize || b.SizePx >= maxSize {
			t.Fatalf("bubble %d: size %.2f outside [%.0f, %.0f)", i, b.SizePx, MinSize, maxSize)
		}
		if b.XPercent < 0 || b.XPercent >= MaxXPercent {
			t.Fatalf("bubble %d: x %.2f outside [0, %.0f)", i, b.XPercent, MaxXPercent)
		}
		if b.Hue < 0 || b.Hue >= 360 {
			t.Fatalf("bubble %d: hue %.2f outside [0, 360)", i, b.Hue)
		}
		if b.Duration < time.Duration(minDurationSec*float64(time.Second)) {
			t.Fatalf("bubble %d: duration %v below floor", i, b.Duration)
		}
	}
}

func TestDurationShrinksWithScore(t *testing.T) {
	// Identical seeds give identical random draws, so the only input that
	// differs between the two factories is the score.
	slow := NewFactory(rand.New(rand.NewSource(7)))
	fast := NewFactory(rand.New(rand.NewSource(7)))

	var shorter int
	const n = 100
	for i := 0; i < n; i++ {
		a := slow.New(120, 0)
		b := fast.New(120, 80)
		if b.Duration > a.Duration {
			t.Fatalf("bubble %d: duration rose with score: %v -> %v", i, a.Duration, b.Duration)
		}
		if b.Duration < a.Duration {
			shorter++
		}
	}
	if shorter == 0 {
		t.Fatal("high score never shortened any duration")
	}
}

func TestColorIsDeterministicPerHue(t *testing.T) {
	a := Bubble{Hue: 120}
	b := Bubble{Hue: 120}
	ar, ag, ab := a.Color()
	br, bg, bb := b.Color()
	if ar != br || ag != bg || ab != bb {
		t.Fatal("same hue produced different colors")
	}
	c := Bubble{Hue: 300}
	cr, cg, cb := c.Color()
	if ar == cr && ag == cg && ab == cb {
		t.Fatal("distinct hues produced identical colors")
	}
}
