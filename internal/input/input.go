// Package input reads key presses from a raw-mode terminal stream.
package input

import (
	"io"
)

// Stream delivers input bytes from a reader via a channel so the frame
// loop can drain them without blocking.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r byte by byte. The
// channel closes when the reader fails (e.g. the connection dropped).
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				s.ch <- buf[0]
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// Presses holds one frame's worth of key presses.
type Presses struct {
	Keys   []byte // printable keys, in arrival order
	Closed bool   // input source is gone; the loop should exit
}

// Drain collects all pending bytes without blocking. Escape sequences
// (arrows, function keys) are swallowed so their final bytes are never
// mistaken for bubble keys.
func (s *Stream) Drain() Presses {
	var buf []byte
	closed := false

loop:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break loop
			}
			buf = append(buf, b)
		default:
			break loop
		}
	}

	var p Presses
	p.Closed = closed
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == 0x1b {
			i += skipEscape(buf[i:]) - 1
			continue
		}
		p.Keys = append(p.Keys, b)
	}
	return p
}

// skipEscape returns the length of the escape sequence at the start of
// buf (at least 1). Handles CSI (ESC [ ... final), SS3 (ESC O final)
// and two-byte ESC+char.
func skipEscape(buf []byte) int {
	if len(buf) < 2 {
		return 1
	}
	if buf[1] == 'O' {
		if len(buf) < 3 {
			return 2
		}
		return 3
	}
	if buf[1] != '[' {
		return 2
	}
	// CSI: parameters 0x30-0x3f, intermediates 0x20-0x2f, final 0x40-0x7e
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			return i + 1
		}
	}
	return len(buf)
}
