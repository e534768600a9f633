package draw

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is a straight-alpha color. A is in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// Background is the color of an empty canvas pixel.
var Background = colorful.Color{}

// HSL returns an opaque color from hue (degrees), saturation and lightness.
func HSL(h, s, l float64) Color {
	return HSLA(h, s, l, 1)
}

// HSLA returns a color from hue (degrees), saturation, lightness and alpha.
func HSLA(h, s, l, a float64) Color {
	return Color{Color: colorful.Hsl(h, s, l), A: a}
}

// Over composites c over dst and returns the opaque result.
func (c Color) Over(dst colorful.Color) colorful.Color {
	if c.A <= 0 {
		return dst
	}
	if c.A >= 1 {
		return c.Color.Clamped()
	}
	return dst.BlendRgb(c.Color, c.A).Clamped()
}
