package draw

import (
	"bytes"
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorOver(t *testing.T) {
	white := HSLA(0, 0, 1, 1)
	assert.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, white.Over(Background))

	half := HSLA(0, 0, 1, 0.5)
	got := half.Over(Background)
	assert.InDelta(t, 0.5, got.R, 1e-9)
	assert.InDelta(t, 0.5, got.G, 1e-9)
	assert.InDelta(t, 0.5, got.B, 1e-9)

	invisible := HSLA(60, 0.5, 0.5, 0)
	assert.Equal(t, Background, invisible.Over(Background))
}

func TestHSL(t *testing.T) {
	c := HSL(0, 1, 0.5)
	assert.Equal(t, 1.0, c.A)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0.0, c.G, 1e-9)
	assert.InDelta(t, 0.0, c.B, 1e-9)
}

func TestFillRectScalesAndClips(t *testing.T) {
	// 10 columns x 5 rows terminal => 10 x 10 sub-pixels, logical 100 x 100
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Clear()

	red := HSL(0, 1, 0.5)
	c.FillRect(Point{X: 20, Y: 20}, Point{X: 40, Y: 40}, red)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			px, ok := c.At(x, y)
			require.True(t, ok)
			inside := x >= 2 && x < 4 && y >= 2 && y < 4
			if inside {
				assert.Equal(t, red.Color.Clamped(), px, "pixel %d,%d", x, y)
			} else {
				assert.Equal(t, Background, px, "pixel %d,%d", x, y)
			}
		}
	}

	// Fully outside rectangles are ignored
	c.FillRect(Point{X: -50, Y: -50}, Point{X: -10, Y: -10}, red)
	c.FillRect(Point{X: 150, Y: 0}, Point{X: 200, Y: 100}, red)
	px, _ := c.At(0, 0)
	assert.Equal(t, Background, px)

	_, ok := c.At(10, 0)
	assert.False(t, ok)
}

func TestRenderSkipsEmptyCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Clear()

	var buf bytes.Buffer
	c.Render(&buf)
	assert.Equal(t, resetStyle, buf.String())

	c.FillRect(Point{X: 1, Y: 0}, Point{X: 2, Y: 1}, HSL(0, 0, 1))
	buf.Reset()
	c.Render(&buf)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, string(BlockUpperHalf)))
	assert.Contains(t, out, "\033[1;2H")
	assert.Contains(t, out, "\033[38;2;255;255;255m")
	assert.Contains(t, out, "\033[48;2;0;0;0m")
}

func TestResizeReallocates(t *testing.T) {
	c := NewScaledCanvas(4, 2, 100, 100)
	c.Resize(8, 3)
	assert.Equal(t, 8, c.TerminalWidth())
	assert.Equal(t, 3, c.TerminalHeight())
	_, ok := c.At(7, 5)
	assert.True(t, ok)
	assert.Equal(t, 100.0, c.LogicalWidth())
	assert.Equal(t, 100.0, c.LogicalHeight())
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)

	cw.WriteAt(3, 2, "hi")
	cw.WriteString(strings.Repeat("x", maxChunkSize*2))
	assert.Zero(t, buf.Len())

	require.NoError(t, cw.Flush())
	assert.True(t, strings.HasPrefix(buf.String(), "\033[2;3Hhi"))
	assert.Equal(t, len("\033[2;3Hhi")+maxChunkSize*2, buf.Len())
}
