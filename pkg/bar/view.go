package bar

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// View maps logical coordinates to surface units in the bar frame.
// X is the category axis, Y the value axis.
type View interface {
	Point(x, y float64) Point
	X(x float64) float64
	Y(y float64) float64
}

// LinearView is a vertical view: categories run left to right, values
// bottom to top.
type LinearView struct {
	Width, Height float64
	xs            scale.Linear
	ys            valueScale
}

// valueScale is satisfied by scale.Linear and scale.Log.
type valueScale interface {
	Map(x float64) float64
}

// NewView returns a linear view of box over a width×height surface.
func NewView(width, height float64, box Box) *LinearView {
	box = box.Fix()
	return &LinearView{
		Width:  width,
		Height: height,
		xs:     scale.Linear{Min: box.XMin, Max: box.XMax},
		ys:     scale.Linear{Min: box.YMin, Max: box.YMax},
	}
}

// NewLogView returns a view with a base 10 logarithmic value axis. A box
// that is not strictly positive falls back to a linear value axis.
func NewLogView(width, height float64, box Box) *LinearView {
	v := NewView(width, height, box)
	if box.YMin <= 0 || box.YMax <= 0 {
		return v
	}
	ls, err := scale.NewLog(box.YMin, box.YMax, 10)
	if err != nil {
		return v
	}
	v.ys = logScale{s: ls, degenerate: box.YMin == box.YMax}
	return v
}

// logScale pins non-positive values to the bottom of the axis.
type logScale struct {
	s          scale.Log
	degenerate bool
}

func (l logScale) Map(y float64) float64 {
	if y <= 0 || math.IsNaN(y) {
		return 0
	}
	if l.degenerate {
		return .5
	}
	return l.s.Map(y)
}

func (v *LinearView) X(x float64) float64 {
	return v.Width * v.xs.Map(x)
}

func (v *LinearView) Y(y float64) float64 {
	return v.Height - v.Height*v.ys.Map(y)
}

func (v *LinearView) Point(x, y float64) Point {
	return Point{v.X(x), v.Y(y)}
}

// HorizontalView lays categories bottom to top and values left to right.
// Its output is still in the bar frame: X is the surface row coordinate of
// a category, Y the surface column of a value. Transposing gives surface
// coordinates.
type HorizontalView struct {
	inner *LinearView
}

// NewHorizontalView wraps a view built with swapped surface dimensions,
// i.e. NewView(height, width, box) for a width×height surface.
func NewHorizontalView(v *LinearView) *HorizontalView {
	return &HorizontalView{inner: v}
}

func (h *HorizontalView) X(x float64) float64 {
	return h.inner.Width - h.inner.X(x)
}

func (h *HorizontalView) Y(y float64) float64 {
	return h.inner.Height - h.inner.Y(y)
}

func (h *HorizontalView) Point(x, y float64) Point {
	return Point{h.X(x), h.Y(y)}
}

// ViewFor builds the view matching the layout for a width×height surface.
func ViewFor(l Layout, width, height float64) View {
	mk := NewView
	if l.Logarithmic {
		mk = NewLogView
	}
	if l.Horizontal {
		return NewHorizontalView(mk(height, width, l.Box))
	}
	return mk(width, height, l.Box)
}
