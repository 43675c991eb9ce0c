// Package core provides fundamental types shared by the game and its hosts.
// It has no external dependencies (especially no Bubble Tea) so the game
// logic stays pure and testable.
package core

// Rect is an axis-aligned bounding box in playfield units.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// SquareAt returns the square of side 2*radius centred on (cx, cy).
func SquareAt(cx, cy, radius float64) Rect {
	return Rect{X: cx - radius, Y: cy - radius, W: 2 * radius, H: 2 * radius}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether both the horizontal and the vertical ranges
// overlap. Touching edges do not count.
func (r Rect) Intersects(other Rect) bool {
	return r.Right() > other.X && r.X < other.Right() &&
		r.Bottom() > other.Y && r.Y < other.Bottom()
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
