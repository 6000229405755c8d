package bar

import "math"

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y float64 // Center
	W, H float64 // Full width and height
}

// RectOverlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap or only touch.
func RectOverlap(a, b Rect) float64 {
	overlapX := (a.W/2 + b.W/2) - math.Abs(a.X-b.X)
	overlapY := (a.H/2 + b.H/2) - math.Abs(a.Y-b.Y)

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// Overlaps reports whether two bars share any area.
func Overlaps(a, b Geometry) bool {
	return RectOverlap(a.Rect(), b.Rect()) > 0
}

// Bounds returns the bounding box of a set of bars in surface space.
func Bounds(gs []Geometry) (minX, minY, maxX, maxY float64) {
	if len(gs) == 0 {
		return 0, 0, 0, 0
	}
	first := gs[0].Normalized()
	minX, minY = first.X, first.Y
	maxX, maxY = first.X+first.Width, first.Y+first.Height
	for _, g := range gs[1:] {
		n := g.Normalized()
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}
	return minX, minY, maxX, maxY
}
