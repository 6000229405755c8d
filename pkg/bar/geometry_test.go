package bar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

func testLayout(n, order int, max float64, horizontal bool) Layout {
	return ComputeLayout(RangeInput{
		Min:        chart.Some(0),
		Max:        chart.Some(max),
		Len:        n,
		Order:      order,
		Horizontal: horizontal,
	})
}

func TestSlotWidthClamp(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		horizontal bool
		want       float64
		original   float64
	}{
		{"wide vertical slot", 4, false, 75, 200},
		{"narrow vertical slot", 20, false, 40, 40},
		{"wide horizontal slot", 4, true, -75, -150},
		{"narrow horizontal slot", 30, true, -20, -20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayout(tt.n, 1, 10, tt.horizontal)
			w, orig := SlotWidth(l, ViewFor(l, 800, 600))
			assert.InDelta(t, tt.want, w, 1e-9)
			assert.InDelta(t, tt.original, orig, 1e-9)
		})
	}
}

func TestBarWidthNeverExceedsCap(t *testing.T) {
	sizes := [][2]float64{{100, 100}, {800, 600}, {4000, 3000}, {20000, 200}}
	for _, horizontal := range []bool{false, true} {
		for _, n := range []int{1, 2, 3, 5, 10, 50} {
			for _, order := range []int{1, 2, 4, 9} {
				for _, sz := range sizes {
					l := testLayout(n, order, 10, horizontal)
					v := ViewFor(l, sz[0], sz[1])
					w, _ := SlotWidth(l, v)
					assert.LessOrEqual(t, math.Abs(w), MaxBarWidth)
					for s := 0; s < order; s++ {
						for i := 0; i < n; i++ {
							g := ComputeGeometry(l, v, Slot{X: l.Fences[i], Y: chart.Some(5), Series: s})
							assert.LessOrEqual(t, math.Abs(g.Width), MaxBarWidth)
						}
					}
				}
			}
		}
	}
}

func TestSingleCategoryIsCentered(t *testing.T) {
	l := testLayout(1, 1, 10, false)
	v := ViewFor(l, 800, 600)
	g := ComputeGeometry(l, v, Slot{X: 0, Y: chart.Some(5)})

	assert.InDelta(t, 400, g.Center().X, 1e-9)
	// 75 slot, 4.5 series margin each side, 6% bar margin of the 66 band.
	assert.InDelta(t, 66*0.88, g.Width, 1e-9)
}

func TestSeriesMargin(t *testing.T) {
	assert.InDelta(t, 4.5, SeriesMarginFor(75, 1), 1e-9)
	assert.InDelta(t, 4.5, SeriesMarginFor(75, 3), 1e-9)
	assert.InDelta(t, 1.2, SeriesMarginFor(20, 1), 1e-9)
	assert.InDelta(t, 4, SeriesMarginFor(20, 2), 1e-9, "floored at 4 with several series")
	assert.InDelta(t, -4, SeriesMarginFor(-20, 2), 1e-9, "keeps the slot sign")
	assert.InDelta(t, 8*MaxSeriesMargin, SeriesMarginFor(8, 2), 1e-9, "ceiling wins over the floor")
	assert.InDelta(t, -8*MaxSeriesMargin, SeriesMarginFor(-8, 3), 1e-9)
}

func TestExpectedGeometry(t *testing.T) {
	l := testLayout(4, 3, 10, false)
	v := ViewFor(l, 800, 600)

	g := ComputeGeometry(l, v, Slot{X: l.Fences[0], Y: chart.Some(5), Series: 0})
	// slot 200 capped to 75 and recentered by 62.5, margin 4.5, band 22,
	// bar margin 1.32.
	assert.InDelta(t, 4.5+62.5+1.32, g.X, 1e-9)
	assert.InDelta(t, 19.36, g.Width, 1e-9)
	assert.InDelta(t, 300, g.Y, 1e-9)
	assert.InDelta(t, 300, g.Height, 1e-9)

	g2 := ComputeGeometry(l, v, Slot{X: l.Fences[0], Y: chart.Some(5), Series: 2})
	assert.InDelta(t, g.X+2*22, g2.X, 1e-9)
}

func TestZeroValueIsPlaceholder(t *testing.T) {
	l := testLayout(2, 1, 10, false)
	v := ViewFor(l, 800, 600)

	zero := ComputeGeometry(l, v, Slot{X: 0, Y: chart.Some(0)})
	assert.Equal(t, StateNoBar, zero.State)
	assert.Equal(t, "rect reactive no-bar", zero.State.Class())
	assert.InDelta(t, 0, zero.Height, 1e-9)

	small := ComputeGeometry(l, v, Slot{X: 0, Y: chart.Some(1e-9)})
	assert.Equal(t, StateBar, small.State)
	assert.Equal(t, "rect reactive tooltip-trigger", small.State.Class())

	missing := ComputeGeometry(l, v, Slot{X: 0, Y: chart.None()})
	assert.Equal(t, StateNoBar, missing.State)
	assert.InDelta(t, 0, missing.Height, 1e-9)
}

func TestNegativeValueHeight(t *testing.T) {
	l := ComputeLayout(RangeInput{Min: chart.Some(-10), Max: chart.Some(10), Len: 2, Order: 1})
	v := ViewFor(l, 800, 600)
	g := ComputeGeometry(l, v, Slot{X: 0, Y: chart.Some(-5)})
	assert.Less(t, g.Height, 0.0)
	n := g.Normalized()
	assert.InDelta(t, 300, n.Y, 1e-9)
	assert.InDelta(t, 150, n.Height, 1e-9)
}

func TestRoundedCorners(t *testing.T) {
	l := testLayout(2, 1, 10, false)
	v := ViewFor(l, 800, 600)
	assert.Equal(t, 0.0, ComputeGeometry(l, v, Slot{Y: chart.Some(3)}).Radius)
	assert.Equal(t, 5.0, ComputeGeometry(l, v, Slot{Y: chart.Some(3), Rounded: 5}).Radius)
}

func TestBandWidthShrinksWithOrder(t *testing.T) {
	for _, n := range []int{1, 3, 12} {
		prev := math.Inf(1)
		for order := 1; order <= 6; order++ {
			l := testLayout(n, order, 10, false)
			v := ViewFor(l, 800, 600)

			g := ComputeGeometry(l, v, Slot{X: l.Fences[0], Y: chart.Some(5)})
			assert.Less(t, g.Width, prev, "n=%d order=%d", n, order)
			prev = g.Width

			for i := 0; i < n; i++ {
				var bars []Geometry
				for s := 0; s < order; s++ {
					bars = append(bars, ComputeGeometry(l, v, Slot{X: l.Fences[i], Y: chart.Some(5), Series: s}))
				}
				for a := range bars {
					for b := a + 1; b < len(bars); b++ {
						assert.False(t, Overlaps(bars[a], bars[b]), "series %d and %d overlap (n=%d order=%d)", a, b, n, order)
					}
				}
				// All bars stay inside the category slot.
				minX, _, maxX, _ := Bounds(bars)
				slotW, _ := SlotWidth(l, v)
				assert.LessOrEqual(t, maxX-minX, slotW+1e-9)
			}
		}
	}
}

func TestOrientationTransposes(t *testing.T) {
	const size = 600
	const n, order = 3, 2
	values := []float64{4, 7} // per series

	vl := testLayout(n, order, 10, false)
	hl := testLayout(n, order, 10, true)
	vv := ViewFor(vl, size, size)
	hv := ViewFor(hl, size, size)

	for s := 0; s < order; s++ {
		for i := 0; i < n; i++ {
			vert := ComputeGeometry(vl, vv, Slot{X: vl.Fences[n-1-i], Y: chart.Some(values[s]), Series: s}).In(false).Normalized()
			horiz := ComputeGeometry(hl, hv, Slot{X: hl.Fences[i], Y: chart.Some(values[s]), Series: s}).In(true).Normalized()

			// Sizes and the category coordinate swap axes. Values grow up
			// from the bottom edge in one and right from the left edge in
			// the other, categories run bottom to top.
			assert.InDelta(t, vert.Height, horiz.Width, 1e-9)
			assert.InDelta(t, vert.Width, horiz.Height, 1e-9)
			assert.InDelta(t, vert.X, horiz.Y, 1e-9)
			assert.InDelta(t, size-(vert.Y+vert.Height), horiz.X, 1e-9)
		}
	}
}

func TestPackingOrderReversedWhenHorizontal(t *testing.T) {
	vl := testLayout(2, 3, 10, false)
	hl := testLayout(2, 3, 10, true)
	vv := ViewFor(vl, 800, 600)
	hv := ViewFor(hl, 800, 600)

	var vx, hy []float64
	for s := 0; s < 3; s++ {
		vx = append(vx, ComputeGeometry(vl, vv, Slot{Y: chart.Some(5), Series: s}).In(false).Normalized().X)
		hy = append(hy, ComputeGeometry(hl, hv, Slot{Y: chart.Some(5), Series: s}).In(true).Normalized().Y)
	}
	require.Len(t, vx, 3)
	// Vertical: series 0 leftmost. Horizontal: series 0 topmost.
	assert.True(t, vx[0] < vx[1] && vx[1] < vx[2])
	assert.True(t, hy[0] < hy[1] && hy[1] < hy[2])

	assert.Equal(t, []int{0, 1, 2}, []int{PackIndex(vl, 0), PackIndex(vl, 1), PackIndex(vl, 2)})
	assert.Equal(t, []int{2, 1, 0}, []int{PackIndex(hl, 0), PackIndex(hl, 1), PackIndex(hl, 2)})
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Equal(t, 25.0, RectOverlap(a, Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.Equal(t, 0.0, RectOverlap(a, Rect{X: 10, Y: 0, W: 10, H: 10}), "touching rectangles do not overlap")
	assert.Equal(t, 0.0, RectOverlap(a, Rect{X: 30, Y: 30, W: 10, H: 10}))
}
