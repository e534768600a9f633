// Package draw renders colored rectangles to a terminal using half-block cells.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point is a position in logical view coordinates (pixels, Y down).
type Point struct {
	X, Y float64
}

// Canvas is a color buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte        // Scratch buffer for integer formatting
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the camera.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// Clear resets all pixels to the background.
func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = Background
	}
}

// At returns the pixel at actual terminal sub-pixel coordinates.
func (c *Canvas) At(x, y int) (colorful.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Background, false
	}
	return c.pixels[y*c.termWidth+x], true
}

// FillRect composites col over every pixel whose center lies inside the
// logical rectangle [lo, hi). Parts outside the canvas are clipped.
func (c *Canvas) FillRect(lo, hi Point, col Color) {
	x0 := int(math.Ceil(lo.X*c.scaleX - 0.5))
	x1 := int(math.Ceil(hi.X*c.scaleX - 0.5))
	y0 := int(math.Ceil(lo.Y*c.scaleY - 0.5))
	y1 := int(math.Ceil(hi.Y*c.scaleY - 0.5))

	x0, x1 = clampRange(x0, x1, c.termWidth)
	y0, y1 = clampRange(y0, y1, c.subPixelHeight)

	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.termWidth : (y+1)*c.termWidth]
		for x := x0; x < x1; x++ {
			row[x] = col.Over(row[x])
		}
	}
}

func clampRange(lo, hi, n int) (int, int) {
	return min(max(lo, 0), n), min(max(hi, 0), n)
}

// Render outputs the canvas to the writer using upper half-blocks with a
// true-color foreground (top pixel) and background (bottom pixel).
// Cells where both pixels are background are skipped.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if top == Background && bottom == Background {
				continue
			}

			c.writeCursor(col+1, row+1)
			c.writeColor("38", top)
			c.writeColor("48", bottom)
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	c.renderBuf.WriteString(resetStyle)

	io.WriteString(w, c.renderBuf.String())
}

func (c *Canvas) writeCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends an SGR true-color sequence; layer is "38" (fg) or "48" (bg).
func (c *Canvas) writeColor(layer string, col colorful.Color) {
	r, g, b := col.RGB255()
	c.renderBuf.WriteString("\033[")
	c.renderBuf.WriteString(layer)
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(b), 10))
	c.renderBuf.WriteByte('m')
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
