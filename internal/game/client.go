// Package game runs the per-connection frame loop: it drains input,
// forwards player actions to the session controller, and renders the
// controller's snapshots at a fixed frame rate.
package game

import (
	"context"
	"io"
	"time"

	"github.com/Kalyan9AI/blubblegame/internal/draw"
	"github.com/Kalyan9AI/blubblegame/internal/input"
	"github.com/Kalyan9AI/blubblegame/internal/session"
)

const targetFPS = 30
const targetFrameTime = time.Second / targetFPS

// Client renders one player's game and feeds their input to the
// controller.
type Client struct {
	ctrl         *session.Controller
	canvas       *draw.Canvas
	cw           *draw.ChunkWriter
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	running      bool
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(ctrl *session.Controller, r io.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := termSizeFunc()
	return &Client{
		ctrl:         ctrl,
		canvas:       draw.NewCanvas(termWidth, termHeight),
		cw:           draw.NewChunkWriter(w),
		stream:       input.StartStream(r),
		termSizeFunc: termSizeFunc,
		running:      true,
	}
}

// Run drives the frame loop until the player quits, the input source
// closes, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.cw)
	defer func() {
		draw.ClearScreen(c.cw)
		draw.ShowCursor(c.cw)
		c.cw.ResetStyle()
		c.cw.Flush()
	}()

	for c.running {
		frameStart := time.Now()

		if ctx.Err() != nil {
			break
		}

		presses := c.stream.Drain()
		if presses.Closed {
			break
		}
		c.handleKeys(presses.Keys)

		c.updateScreen()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	return nil
}

// handleKeys maps presses to controller events. Letter keys pop the
// bubble carrying that label; stale presses for bubbles that already
// left the screen are dropped by the controller.
func (c *Client) handleKeys(keys []byte) {
	snap := c.ctrl.Snapshot()
	for _, b := range keys {
		switch b {
		case 'q', 'Q', 0x03: // ctrl-c
			c.running = false
		case 'm', 'M':
			c.ctrl.ToggleMute()
		case 'r', 'R':
			c.ctrl.Restart()
		case ' ', '\r', '\n':
			c.ctrl.Start()
		default:
			if b < 'A' || b > 'z' {
				continue
			}
			key := rune(b | 0x20) // lowercase
			if snap.Phase != session.PhaseRunning {
				continue
			}
			if id, ok := snap.BubbleByKey(key); ok {
				c.ctrl.Activated(id)
			}
		}
	}
}

// updateScreen handles terminal resize.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	c.canvas.Resize(termWidth, termHeight)
}

// drawFrame renders the current snapshot.
func (c *Client) drawFrame() error {
	draw.ClearScreen(c.cw)
	c.canvas.Clear()

	snap := c.ctrl.Snapshot()
	switch snap.Phase {
	case session.PhaseIdle:
		c.drawStartScreen(snap)
	case session.PhaseRunning:
		c.drawPlaying(snap)
	case session.PhaseEnded:
		c.drawEndScreen(snap)
	}

	return c.cw.Flush()
}
