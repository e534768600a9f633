package physics

import "math"

// Square is an axis-aligned rectangle described by its full size.
// The name follows the square collision shape; width and height may differ.
type Square struct {
	Size Vec2
}

// SquareOf returns a square shape with the given size.
func SquareOf(size Vec2) Square {
	return Square{Size: size}
}

// AABB returns the bounds of the square centered at center.
func (s Square) AABB(center Vec2) AABB {
	half := s.Size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// Overlaps reports whether the boxes share interior area.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// Penetration returns the smallest translation that moves a out of b.
// ok is false when the boxes do not overlap.
func (a AABB) Penetration(b AABB) (push Vec2, ok bool) {
	if !a.Overlaps(b) {
		return Zero, false
	}

	// Overlap depth on each side; push along the shallowest axis
	left := a.Max.X - b.Min.X
	right := b.Max.X - a.Min.X
	down := a.Max.Y - b.Min.Y
	up := b.Max.Y - a.Min.Y

	px := right
	if left < right {
		px = -left
	}
	py := up
	if down < up {
		py = -down
	}

	if math.Abs(px) < math.Abs(py) {
		return Vec2{X: px}, true
	}
	return Vec2{Y: py}, true
}
