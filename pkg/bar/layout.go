// Package bar computes grouped bar geometry and label anchors.
//
// A render pass is ComputeLayout once, then Plotter.Plot over the primary
// and secondary series. Geometry is computed in the bar frame, where X runs
// along the category axis and Y along the value axis; it is transposed to
// surface space only when handed to a Surface.
package bar

import (
	"math"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// Box is the logical extent of the plot.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultBox returns the unit box.
func DefaultBox() Box {
	return Box{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
}

// Width returns the logical category extent.
func (b Box) Width() float64 { return b.XMax - b.XMin }

// Height returns the logical value extent.
func (b Box) Height() float64 { return b.YMax - b.YMin }

// Fix expands degenerate extents so that views never divide by zero.
func (b Box) Fix() Box {
	if b.Width() == 0 {
		b.XMax = b.XMin + 1
	}
	if b.Height() == 0 {
		b.YMin -= .5
		b.YMax = b.YMin + 1
	}
	return b
}

// Contains reports whether v lies in the value extent.
func (b Box) Contains(v float64) bool {
	return b.YMin <= v && v <= b.YMax
}

// RangeInput is what the chart declares before layout.
type RangeInput struct {
	Min, Max    chart.Value
	Zero        float64
	Len         int // number of categories
	Order       int // number of series sharing a slot
	Horizontal  bool
	Logarithmic bool
}

// Layout is the shared context of one render pass. It is computed once by
// ComputeLayout and only read afterwards.
type Layout struct {
	Order       int
	Len         int
	Horizontal  bool
	Logarithmic bool
	Zero        float64
	Box         Box
	Fences      []float64 // slot boundaries in logical units
	Centers     []float64 // slot centers in logical units
}

// ComputeLayout extends the value range to include the baseline and places
// the category slots.
func ComputeLayout(in RangeInput) Layout {
	box := DefaultBox()
	if min, ok := in.Min.Get(); ok {
		box.YMin = math.Min(min, in.Zero)
	}
	if max, ok := in.Max.Get(); ok {
		box.YMax = math.Max(max, in.Zero)
	}
	box.YMin = math.Min(box.YMin, in.Zero)
	box.YMax = math.Max(box.YMax, in.Zero)
	box = box.Fix()

	n := in.Len
	if n < 1 {
		n = 1
	}
	order := in.Order
	if order < 1 {
		order = 1
	}

	return Layout{
		Order:       order,
		Len:         n,
		Horizontal:  in.Horizontal,
		Logarithmic: in.Logarithmic,
		Zero:        in.Zero,
		Box:         box,
		Fences:      Fences(in.Len),
		Centers:     Centers(in.Len),
	}
}

// Fences returns the category fence-posts: len+1 evenly spaced posts, or
// [0, 1] when there is at most one category so that it is centered.
func Fences(n int) []float64 {
	if n <= 1 {
		return []float64{0, 1}
	}
	f := make([]float64, n+1)
	for i := range f {
		f[i] = float64(i) / float64(n)
	}
	return f
}

// Centers returns the category centers (i+0.5)/n.
func Centers(n int) []float64 {
	if n < 1 {
		n = 1
	}
	c := make([]float64, n)
	for i := range c {
		c[i] = (float64(i) + .5) / float64(n)
	}
	return c
}

// LogZero returns the baseline to use on a logarithmic axis: a baseline
// at or below zero is undefined there and becomes the smallest positive
// value.
func LogZero(zero float64, positiveMin chart.Value) float64 {
	if zero > 0 {
		return zero
	}
	if v, ok := positiveMin.Get(); ok && v > 0 {
		return v
	}
	return 1
}

// DataPoint is a logical point whose value may be absent.
type DataPoint struct {
	X float64
	Y chart.Value
}

// Points places the values of a series on the category fences.
func (l Layout) Points(s *chart.Series) []DataPoint {
	pts := make([]DataPoint, len(s.Values))
	for i, d := range s.Values {
		x := 0.0
		if i < len(l.Fences) {
			x = l.Fences[i]
		}
		pts[i] = DataPoint{X: x, Y: d.Value}
	}
	return pts
}
