package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Pop pitches by point value: smaller bubbles are riskier and ring higher.
var popFreqs = map[int]float64{
	3: 1318.51, // E6
	2: 987.77,  // B5
	1: 783.99,  // G5
}

// Synth plays feedback through the system speaker using short
// synthesized sine tones.
type Synth struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	muted bool
}

// NewSynth initializes the speaker and starts the mixer. Returns an
// error when no audio device is available; callers fall back to Nop.
func NewSynth(muted bool) (*Synth, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Synth{mixer: &beep.Mixer{}, muted: muted}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Synth) play(freq float64, dur time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted {
		return
	}
	s.mixer.Add(beep.Take(sampleRate.N(dur), newTone(freq, dur)))
}

// Pop plays a short ping for the given point value.
func (s *Synth) Pop(points int) {
	freq, ok := popFreqs[points]
	if !ok {
		freq = popFreqs[1]
	}
	s.play(freq, 90*time.Millisecond)
}

// GameOver plays a low two-note descent.
func (s *Synth) GameOver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted {
		return
	}
	s.mixer.Add(beep.Seq(
		beep.Take(sampleRate.N(180*time.Millisecond), newTone(392.00, 180*time.Millisecond)), // G4
		beep.Take(sampleRate.N(260*time.Millisecond), newTone(261.63, 260*time.Millisecond)), // C4
	))
}

func (s *Synth) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// tone is a sine oscillator with a linear attack/release envelope.
type tone struct {
	phase    float64
	freq     float64
	position int
	total    int
	attack   int
	release  int
}

func newTone(freq float64, dur time.Duration) *tone {
	total := sampleRate.N(dur)
	edge := sampleRate.N(8 * time.Millisecond)
	return &tone{freq: freq, total: total, attack: edge, release: edge}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * t.phase)

		vol := 1.0
		if t.position < t.attack && t.attack > 0 {
			vol = float64(t.position) / float64(t.attack)
		} else if rem := t.total - t.position; rem < t.release && t.release > 0 {
			vol = float64(rem) / float64(t.release)
		}
		val *= vol * 0.4

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
