package runner

import "github.com/vovakirdan/hopper/internal/core"

// Collides reports whether box overlaps any obstacle on both axes.
// It stops at the first hit.
func Collides(box core.Rect, obstacles []Obstacle) bool {
	for _, o := range obstacles {
		if box.Intersects(o.Rect()) {
			return true
		}
	}
	return false
}
