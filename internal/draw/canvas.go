package draw

import (
	"io"
	"strconv"
	"strings"
)

// Canvas is a color drawing buffer with 2x vertical resolution. Each
// terminal cell holds two vertically stacked subpixels rendered with
// half-block characters; a subpixel unit is one column wide and half a
// row tall, which is close to square on common fonts.
type Canvas struct {
	termWidth  int
	termHeight int
	subHeight  int // termHeight * 2

	pixels []cell // [y*termWidth + x] in subpixel coordinates

	renderBuf strings.Builder
	numBuf    [12]byte
}

type cell struct {
	color RGB
	set   bool
}

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subHeight = termHeight * 2
	c.pixels = make([]cell, c.subHeight*termWidth)
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Width returns the canvas width in columns.
func (c *Canvas) Width() int { return c.termWidth }

// Height returns the canvas height in rows.
func (c *Canvas) Height() int { return c.termHeight }

// SubHeight returns the canvas height in subpixels.
func (c *Canvas) SubHeight() int { return c.subHeight }

// SetPixel sets one subpixel. x is in columns, y in subpixels.
func (c *Canvas) SetPixel(x, y int, color RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subHeight {
		c.pixels[y*c.termWidth+x] = cell{color: color, set: true}
	}
}

// FillCircle fills a circle centered at (cx, cy) with radius r, all in
// subpixel units.
func (c *Canvas) FillCircle(cx, cy, r float64, color RGB) {
	if r <= 0 {
		return
	}
	minX := int(cx - r - 1)
	maxX := int(cx + r + 1)
	minY := int(cy - r - 1)
	maxY := int(cy + r + 1)
	r2 := r * r
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				c.SetPixel(x, y, color)
			}
		}
	}
}

// Render writes the canvas using half-block characters and 24-bit SGR
// colors, skipping empty cells. Output goes through w unbuffered; pass a
// ChunkWriter to batch it.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight / 2)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			switch {
			case top.set && bottom.set && top.color == bottom.color:
				c.moveTo(col, row)
				c.sgr(38, top.color)
				c.renderBuf.WriteRune('█')
			case top.set && bottom.set:
				c.moveTo(col, row)
				c.sgr(38, top.color)
				c.sgr(48, bottom.color)
				c.renderBuf.WriteRune('▀')
				c.renderBuf.WriteString("\033[49m")
			case top.set:
				c.moveTo(col, row)
				c.sgr(38, top.color)
				c.renderBuf.WriteRune('▀')
			case bottom.set:
				c.moveTo(col, row)
				c.sgr(38, bottom.color)
				c.renderBuf.WriteRune('▄')
			}
		}
	}
	c.renderBuf.WriteString("\033[0m")

	io.WriteString(w, c.renderBuf.String())
}

// moveTo appends a cursor move to 0-based canvas coordinates.
func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1), 10))
	c.renderBuf.WriteByte('H')
}

// sgr appends a 24-bit color sequence; plane is 38 (fg) or 48 (bg).
func (c *Canvas) sgr(plane int, color RGB) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(plane), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(color.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(color.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(color.B), 10))
	c.renderBuf.WriteByte('m')
}
