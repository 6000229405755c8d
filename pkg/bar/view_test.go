package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

func TestLinearView(t *testing.T) {
	v := NewView(800, 600, Box{XMin: 0, XMax: 1, YMin: 0, YMax: 10})

	assert.InDelta(t, 0, v.X(0), 1e-9)
	assert.InDelta(t, 800, v.X(1), 1e-9)
	assert.InDelta(t, 600, v.Y(0), 1e-9)
	assert.InDelta(t, 0, v.Y(10), 1e-9)
	assert.InDelta(t, 300, v.Y(5), 1e-9)
	assert.Equal(t, Point{400, 300}, v.Point(.5, 5))
}

func TestHorizontalView(t *testing.T) {
	box := Box{XMin: 0, XMax: 1, YMin: 0, YMax: 10}
	// 800 wide, 600 tall surface.
	h := NewHorizontalView(NewView(600, 800, box))

	// Categories run bottom to top.
	assert.InDelta(t, 600, h.X(0), 1e-9)
	assert.InDelta(t, 0, h.X(1), 1e-9)
	// Values run left to right.
	assert.InDelta(t, 0, h.Y(0), 1e-9)
	assert.InDelta(t, 800, h.Y(10), 1e-9)
}

func TestLogView(t *testing.T) {
	v := NewLogView(100, 100, Box{XMin: 0, XMax: 1, YMin: 1, YMax: 100})

	assert.InDelta(t, 100, v.Y(1), 1e-9)
	assert.InDelta(t, 50, v.Y(10), 1e-9)
	assert.InDelta(t, 0, v.Y(100), 1e-9)
	// Non-positive values are pinned to the axis origin.
	assert.InDelta(t, 100, v.Y(0), 1e-9)
	assert.InDelta(t, 100, v.Y(-4), 1e-9)
}

func TestLogViewFallsBackToLinear(t *testing.T) {
	v := NewLogView(100, 100, Box{XMin: 0, XMax: 1, YMin: 0, YMax: 10})
	assert.InDelta(t, 50, v.Y(5), 1e-9)
}

func TestViewFor(t *testing.T) {
	l := ComputeLayout(RangeInput{Len: 2, Order: 1, Max: chart.Some(10), Horizontal: true})
	v := ViewFor(l, 800, 600)
	_, ok := v.(*HorizontalView)
	assert.True(t, ok)

	l.Horizontal = false
	_, ok = ViewFor(l, 800, 600).(*LinearView)
	assert.True(t, ok)
}
