package game

import (
	"fmt"
	"time"

	"github.com/Kalyan9AI/blubblegame/internal/draw"
	"github.com/Kalyan9AI/blubblegame/internal/session"
)

// drawPlaying renders the rising bubbles, their key labels, and the HUD.
func (c *Client) drawPlaying(snap *session.Snapshot) {
	now := time.Now()
	width := c.canvas.Width()
	height := c.canvas.Height()
	subHeight := c.canvas.SubHeight()

	type label struct {
		col, row int
		key      rune
	}
	labels := make([]label, 0, len(snap.Bubbles))

	for _, v := range snap.Bubbles {
		progress := v.Progress(now)

		// Subpixel units: one column wide, half a row tall. Nominal
		// pixels map 8:1 so a 28-48px bubble spans 7-12 columns.
		radius := v.SizePx / 8
		cx := v.XPercent/100*float64(width) + radius
		// Rise from fully below the bottom edge to fully above the top.
		travel := float64(subHeight) + 2*radius
		cy := float64(subHeight) + radius - progress*travel

		r, g, b := v.Color()
		c.canvas.FillCircle(cx, cy, radius, draw.RGB{R: r, G: g, B: b})
		labels = append(labels, label{col: int(cx), row: int(cy / 2), key: v.Key})
	}

	c.canvas.Render(c.cw)

	// Key labels go over the canvas output.
	c.cw.WriteString("\033[1;97m") // bold white
	for _, l := range labels {
		if l.col < 0 || l.col >= width || l.row < 0 || l.row >= height {
			continue
		}
		c.cw.MoveCursor(l.col+1, l.row+1)
		c.cw.WriteRune(l.key)
	}
	c.cw.ResetStyle()

	c.drawHUD(snap)
}

// drawHUD draws score, countdown and best score on the top row.
func (c *Client) drawHUD(snap *session.Snapshot) {
	width := c.canvas.Width()

	scoreText := fmt.Sprintf("Score: %d", snap.Score)
	c.cw.WriteAt(2, 1, scoreText)

	timeText := fmt.Sprintf("Time: %02d", snap.Remaining)
	c.cw.WriteAt(width/2-len(timeText)/2, 1, timeText)

	bestText := fmt.Sprintf("Best: %d", snap.Best)
	if snap.Muted {
		bestText += "  [muted]"
	}
	c.cw.WriteAt(width-len(bestText)-1, 1, bestText)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(snap *session.Snapshot) {
	centerX := c.canvas.Width() / 2
	centerY := c.canvas.Height() / 2

	title := "B L U B B L E"
	c.cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	subtitle := "Pop the bubbles before they float away"
	c.cw.WriteAt(centerX-len(subtitle)/2, centerY-1, subtitle)

	if snap.Best > 0 {
		bestText := fmt.Sprintf("Best score: %d", snap.Best)
		c.cw.WriteAt(centerX-len(bestText)/2, centerY+1, bestText)
	}

	prompt := "Press SPACE to start"
	c.cw.WriteAt(centerX-len(prompt)/2, centerY+3, prompt)

	controls := "Type a bubble's letter to pop it - M mute, R restart, Q quit"
	c.cw.WriteAt(centerX-len(controls)/2, centerY+5, controls)
}

// drawEndScreen draws the final score overlay.
func (c *Client) drawEndScreen(snap *session.Snapshot) {
	centerX := c.canvas.Width() / 2
	centerY := c.canvas.Height() / 2

	title := "T I M E ' S  U P"
	c.cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	scoreText := fmt.Sprintf("Final score: %d", snap.Score)
	c.cw.WriteAt(centerX-len(scoreText)/2, centerY-1, scoreText)

	bestText := fmt.Sprintf("Best: %d", snap.Best)
	if snap.Score > 0 && snap.Score == snap.Best {
		bestText = "New best score!"
	}
	c.cw.WriteAt(centerX-len(bestText)/2, centerY+1, bestText)

	prompt := "Press SPACE to play again, Q to quit"
	c.cw.WriteAt(centerX-len(prompt)/2, centerY+3, prompt)
}
