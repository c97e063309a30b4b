// Package session drives one timed play-through: the countdown, the
// accelerating spawn cadence, scoring, and the best-score record.
package session

import "time"

// Session tuning constants.
const (
	// Length of one play-through.
	Seconds = 60

	// Spawn cadence bounds. The interval starts at the initial value and
	// decays multiplicatively toward the floor as score grows.
	InitialSpawnInterval = 900 * time.Millisecond
	MinSpawnInterval     = 280 * time.Millisecond

	// Interval shrinks by this factor each time score crosses a new
	// multiple of accelScoreStep.
	spawnAccelFactor = 0.92
	accelScoreStep   = 6
)

// Phase is the lifecycle phase of the game for one connection.
type Phase int

const (
	PhaseIdle    Phase = iota // Title screen, nothing played yet
	PhaseRunning              // Countdown active
	PhaseEnded                // Countdown hit zero, overlay shown
)

// Session holds the mutable scalars of one play-through.
type Session struct {
	Score         int
	Remaining     int // seconds
	SpawnInterval time.Duration
	Running       bool
}

// NextInterval returns the spawn interval after one acceleration step:
// multiplied by the decay factor, truncated to the millisecond grid and
// floored. NextInterval(MinSpawnInterval) == MinSpawnInterval.
func NextInterval(cur time.Duration) time.Duration {
	next := time.Duration(float64(cur.Milliseconds())*spawnAccelFactor) * time.Millisecond
	if next < MinSpawnInterval {
		next = MinSpawnInterval
	}
	return next
}
