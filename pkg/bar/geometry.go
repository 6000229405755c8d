package bar

import (
	"math"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// Presentation constants. These are tuned by eye, not derived.
const (
	MaxBarWidth     = 75.0 // cap on a category slot, in surface units
	SeriesMargin    = .06  // inter-series margin, fraction of the slot
	BarMargin       = .06  // intra-series margin, fraction of the band
	MinSeriesMargin = 4.0  // floor of the inter-series margin with several series
	MaxSeriesMargin = .25  // ceiling of the inter-series margin, fraction of the slot; wins over the floor
)

// State distinguishes drawn bars from placeholders.
type State int

const (
	StateBar   State = iota // interactive bar
	StateNoBar              // placeholder for a zero or missing value
)

// Class returns the node class for the state.
func (s State) Class() string {
	if s == StateNoBar {
		return "rect reactive no-bar"
	}
	return "rect reactive tooltip-trigger"
}

func (s State) String() string {
	if s == StateNoBar {
		return "no-bar"
	}
	return "bar"
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Swap exchanges X and Y.
func (p Point) Swap() Point {
	return Point{p.Y, p.X}
}

// Transpose maps a bar frame point to surface space.
type Transpose func(Point) Point

// TransposeFor returns Swap for horizontal charts, identity otherwise.
func TransposeFor(horizontal bool) Transpose {
	if horizontal {
		return Point.Swap
	}
	return func(p Point) Point { return p }
}

// Slot is one bar to lay out.
type Slot struct {
	X         float64     // category fence in logical units
	Y         chart.Value // value, absent for a missing point
	Series    int         // series index among all series
	Rounded   float64     // corner radius when > 0
	Secondary bool
}

// Geometry is a computed bar rectangle. Width and Height may be negative:
// the rectangle then extends left or up from (X, Y).
type Geometry struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
	State         State
	Secondary     bool
}

// Center returns the center of the rectangle.
func (g Geometry) Center() Point {
	return Point{g.X + g.Width/2, g.Y + g.Height/2}
}

// Transposed returns the geometry with x/y and width/height exchanged.
func (g Geometry) Transposed() Geometry {
	g.X, g.Y = g.Y, g.X
	g.Width, g.Height = g.Height, g.Width
	return g
}

// In returns the geometry in surface space for the given orientation.
func (g Geometry) In(horizontal bool) Geometry {
	if horizontal {
		return g.Transposed()
	}
	return g
}

// Normalized returns an equivalent rectangle with non-negative size.
func (g Geometry) Normalized() Geometry {
	if g.Width < 0 {
		g.X += g.Width
		g.Width = -g.Width
	}
	if g.Height < 0 {
		g.Y += g.Height
		g.Height = -g.Height
	}
	return g
}

// Rect returns the bounding rectangle, centered, for overlap tests.
func (g Geometry) Rect() Rect {
	n := g.Normalized()
	return Rect{X: n.X + n.Width/2, Y: n.Y + n.Height/2, W: n.Width, H: n.Height}
}

// SlotWidth returns the surface width of one category slot, clamped to
// ±MaxBarWidth, and the unclamped width.
func SlotWidth(l Layout, v View) (width, original float64) {
	original = (v.X(1) - v.X(0)) / float64(l.Len)
	if l.Horizontal {
		width = math.Max(original, -MaxBarWidth)
	} else {
		width = math.Min(original, MaxBarWidth)
	}
	return width, original
}

// SeriesMarginFor returns the inter-series margin of a slot of the given
// width. It keeps the sign of width. With more than one series it is at
// least MinSeriesMargin, but never more than MaxSeriesMargin of the slot.
func SeriesMarginFor(width float64, order int) float64 {
	w := math.Abs(width)
	m := w * SeriesMargin
	if order > 1 {
		m = math.Max(m, MinSeriesMargin)
		m = math.Min(m, w*MaxSeriesMargin)
	}
	return math.Copysign(m, width)
}

// PackIndex returns the position of a series inside its slot. Horizontal
// charts pack in reverse so the first series is on top.
func PackIndex(l Layout, series int) int {
	if l.Horizontal {
		return l.Order - series - 1
	}
	return series
}

// ComputeGeometry lays out one bar.
func ComputeGeometry(l Layout, v View, s Slot) Geometry {
	width, original := SlotWidth(l, v)

	y := s.Y.Or(l.Zero)
	p := v.Point(s.X, y)
	x := p.X

	sm := SeriesMarginFor(width, l.Order)
	x += sm

	if original != width {
		// Recenter the capped slot on the original one.
		x += (original - width) / 2
	}

	width -= 2 * sm
	width /= float64(l.Order)
	x += float64(PackIndex(l, s.Series)) * width

	bm := width * BarMargin
	x += bm
	width -= 2 * bm

	g := Geometry{
		X:         x,
		Y:         p.Y,
		Width:     width,
		Height:    v.Y(l.Zero) - p.Y,
		State:     StateBar,
		Secondary: s.Secondary,
	}
	if s.Rounded > 0 {
		g.Radius = s.Rounded
	}
	if !s.Y.Present() || s.Y.IsZero() {
		g.State = StateNoBar
	}
	return g
}
