// Package audio plays short feedback tones for game events.
package audio

import (
	"io"
	"sync/atomic"
)

// Feedback is the audio collaborator: fire-and-forget cues plus the
// mute switch. Implementations must be safe for concurrent use.
type Feedback interface {
	// Pop plays the dismissal cue; pitch rises with the point value.
	Pop(points int)
	// GameOver plays the end-of-session cue.
	GameOver()
	SetMuted(muted bool)
	Muted() bool
}

// Nop discards all cues. Used in tests and when audio is unavailable.
type Nop struct{}

func (Nop) Pop(int)       {}
func (Nop) GameOver()     {}
func (Nop) SetMuted(bool) {}
func (Nop) Muted() bool   { return true }

// Bell writes the terminal bell for each cue. It is the feedback path
// for remote sessions, where synthesized audio cannot cross the wire.
type Bell struct {
	w     io.Writer
	muted atomic.Bool
}

// NewBell creates bell feedback writing to w, typically the session's
// terminal writer.
func NewBell(w io.Writer, muted bool) *Bell {
	b := &Bell{w: w}
	b.muted.Store(muted)
	return b
}

func (b *Bell) ring() {
	if b.muted.Load() {
		return
	}
	b.w.Write([]byte{0x07})
}

func (b *Bell) Pop(int)   { b.ring() }
func (b *Bell) GameOver() { b.ring() }

func (b *Bell) SetMuted(muted bool) { b.muted.Store(muted) }
func (b *Bell) Muted() bool         { return b.muted.Load() }
