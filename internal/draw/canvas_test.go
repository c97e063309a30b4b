package draw

import (
	"strings"
	"testing"
)

func TestSetPixelIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(10, 5)
	white := RGB{255, 255, 255}

	c.SetPixel(-1, 0, white)
	c.SetPixel(0, -1, white)
	c.SetPixel(10, 0, white)
	c.SetPixel(0, 10, white) // subHeight is 10
	for i, px := range c.pixels {
		if px.set {
			t.Fatalf("out-of-bounds write landed at index %d", i)
		}
	}

	c.SetPixel(9, 9, white)
	if !c.pixels[9*10+9].set {
		t.Fatal("in-bounds write did not land")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}

	tests := []struct {
		name        string
		draw        func(c *Canvas)
		wantGlyph   string
		unwantGlyph []string
	}{
		{
			name:        "top only",
			draw:        func(c *Canvas) { c.SetPixel(0, 0, red) },
			wantGlyph:   "▀",
			unwantGlyph: []string{"▄", "█"},
		},
		{
			name:        "bottom only",
			draw:        func(c *Canvas) { c.SetPixel(0, 1, red) },
			wantGlyph:   "▄",
			unwantGlyph: []string{"▀", "█"},
		},
		{
			name: "same color pair",
			draw: func(c *Canvas) {
				c.SetPixel(0, 0, red)
				c.SetPixel(0, 1, red)
			},
			wantGlyph:   "█",
			unwantGlyph: []string{"▀", "▄"},
		},
		{
			name: "split color pair",
			draw: func(c *Canvas) {
				c.SetPixel(0, 0, red)
				c.SetPixel(0, 1, blue)
			},
			wantGlyph:   "▀",
			unwantGlyph: []string{"█"},
		},
	}
	for _, tt := range tests {
		c := NewCanvas(4, 2)
		tt.draw(c)
		var sb strings.Builder
		c.Render(&sb)
		out := sb.String()
		if !strings.Contains(out, tt.wantGlyph) {
			t.Errorf("%s: output %q missing %q", tt.name, out, tt.wantGlyph)
		}
		for _, g := range tt.unwantGlyph {
			if strings.Contains(out, g) {
				t.Errorf("%s: output %q contains unexpected %q", tt.name, out, g)
			}
		}
	}
}

func TestRenderSplitPairRestoresBackground(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetPixel(0, 0, RGB{10, 20, 30})
	c.SetPixel(0, 1, RGB{40, 50, 60})
	var sb strings.Builder
	c.Render(&sb)
	out := sb.String()

	if !strings.Contains(out, "\033[38;2;10;20;30m") {
		t.Errorf("output %q missing foreground sequence", out)
	}
	if !strings.Contains(out, "\033[48;2;40;50;60m") {
		t.Errorf("output %q missing background sequence", out)
	}
	if !strings.Contains(out, "\033[49m") {
		t.Errorf("output %q does not restore the default background", out)
	}
}

func TestRenderEmptyCanvasEmitsOnlyReset(t *testing.T) {
	c := NewCanvas(8, 4)
	var sb strings.Builder
	c.Render(&sb)
	if got := sb.String(); got != "\033[0m" {
		t.Fatalf("empty canvas rendered %q", got)
	}
}

func TestFillCircleStaysWithinRadius(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(10, 10, 4, RGB{255, 255, 255})

	set := 0
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.Width(); x++ {
			if !c.pixels[y*c.Width()+x].set {
				continue
			}
			set++
			dx := float64(x) + 0.5 - 10
			dy := float64(y) + 0.5 - 10
			if dx*dx+dy*dy > 16 {
				t.Fatalf("pixel (%d,%d) outside radius", x, y)
			}
		}
	}
	if set == 0 {
		t.Fatal("FillCircle set no pixels")
	}
}

func TestResizeReallocates(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetPixel(0, 0, RGB{1, 2, 3})

	c.Resize(20, 8)
	if c.Width() != 20 || c.Height() != 8 || c.SubHeight() != 16 {
		t.Fatalf("resize dims = %dx%d/%d", c.Width(), c.Height(), c.SubHeight())
	}
	if len(c.pixels) != 20*16 {
		t.Fatalf("pixel buffer = %d, want %d", len(c.pixels), 20*16)
	}
}
