package object

import (
	"github.com/tomz197/hitbox/internal/draw"
	"github.com/tomz197/hitbox/internal/physics"
)

// View is the logical viewport the camera projects onto, in pixels.
type View struct {
	Width, Height float64
}

// WorldToView converts a world position to view pixels for a camera at camPos.
// The camera looks at the view center; world Y points up, view Y points down.
func (c Camera) WorldToView(p, camPos physics.Vec2, view View) draw.Point {
	return draw.Point{
		X: view.Width/2 + (p.X-camPos.X)/c.Scale,
		Y: view.Height/2 - (p.Y-camPos.Y)/c.Scale,
	}
}

// ViewRect returns the top-left and bottom-right view corners of a rectangle
// of the given size centered at p.
func (c Camera) ViewRect(p, size, camPos physics.Vec2, view View) (topLeft, bottomRight draw.Point) {
	half := size.Scale(0.5)
	topLeft = c.WorldToView(physics.Vec2{X: p.X - half.X, Y: p.Y + half.Y}, camPos, view)
	bottomRight = c.WorldToView(physics.Vec2{X: p.X + half.X, Y: p.Y - half.Y}, camPos, view)
	return topLeft, bottomRight
}
