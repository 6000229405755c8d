package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

func TestFencesSingleCategory(t *testing.T) {
	assert.Equal(t, []float64{0, 1}, Fences(1))
	assert.Equal(t, []float64{0, 1}, Fences(0))
	assert.Equal(t, []float64{.5}, Centers(1))
}

func TestFencesAndCenters(t *testing.T) {
	for _, n := range []int{2, 3, 4, 7, 12} {
		f := Fences(n)
		assert.Len(t, f, n+1)
		assert.Equal(t, 0.0, f[0])
		assert.InDelta(t, 1.0, f[n], 1e-12)

		c := Centers(n)
		assert.Len(t, c, n)
		for i := range c {
			assert.InDelta(t, (float64(i)+.5)/float64(n), c[i], 1e-12)
			if i > 0 {
				assert.Greater(t, c[i], c[i-1], "centers must increase (n=%d)", n)
				assert.InDelta(t, 1/float64(n), c[i]-c[i-1], 1e-12, "centers must be evenly spaced")
			}
		}
	}
}

func TestCentersFourCategories(t *testing.T) {
	l := ComputeLayout(RangeInput{Len: 4, Order: 3, Min: chart.Some(1), Max: chart.Some(9)})
	assert.Equal(t, 4, l.Len)
	assert.Equal(t, []float64{.125, .375, .625, .875}, l.Centers)
}

func TestComputeLayoutIncludesZero(t *testing.T) {
	tests := []struct {
		name     string
		min, max chart.Value
		zero     float64
	}{
		{"both absent", chart.None(), chart.None(), 0},
		{"both absent, high zero", chart.None(), chart.None(), 5},
		{"both absent, negative zero", chart.None(), chart.None(), -3},
		{"positive range", chart.Some(2), chart.Some(8), 0},
		{"negative range", chart.Some(-8), chart.Some(-2), 0},
		{"straddling range", chart.Some(-4), chart.Some(4), 0},
		{"zero above range", chart.Some(1), chart.Some(3), 10},
		{"zero below range", chart.Some(5), chart.Some(6), -1},
		{"only min", chart.Some(-20), chart.None(), 0},
		{"only max", chart.None(), chart.Some(50), 0},
		{"degenerate", chart.Some(0), chart.Some(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(RangeInput{Min: tt.min, Max: tt.max, Zero: tt.zero, Len: 3, Order: 1})
			assert.LessOrEqual(t, l.Box.YMin, tt.zero)
			assert.GreaterOrEqual(t, l.Box.YMax, tt.zero)
			assert.Greater(t, l.Box.Height(), 0.0)
			if v, ok := tt.min.Get(); ok {
				assert.LessOrEqual(t, l.Box.YMin, v)
			}
			if v, ok := tt.max.Get(); ok {
				assert.GreaterOrEqual(t, l.Box.YMax, v)
			}
		})
	}
}

func TestComputeLayoutDegenerateCounts(t *testing.T) {
	l := ComputeLayout(RangeInput{})
	assert.Equal(t, 1, l.Len)
	assert.Equal(t, 1, l.Order)
	assert.Equal(t, []float64{0, 1}, l.Fences)
	assert.Equal(t, []float64{.5}, l.Centers)
}

func TestLogZero(t *testing.T) {
	assert.Equal(t, 3.0, LogZero(3, chart.Some(0.5)))
	assert.Equal(t, 0.5, LogZero(0, chart.Some(0.5)))
	assert.Equal(t, 1.0, LogZero(0, chart.None()))
	assert.Equal(t, 10.0, LogZero(-5, chart.Some(10)))
}

func TestLogViewWithNegativeBaselineStaysLogarithmic(t *testing.T) {
	zero := LogZero(-5, chart.Some(10))
	l := ComputeLayout(RangeInput{
		Min:         chart.Some(10),
		Max:         chart.Some(1000),
		Zero:        zero,
		Len:         3,
		Order:       1,
		Logarithmic: true,
	})
	assert.Equal(t, 10.0, l.Box.YMin)

	v := ViewFor(l, 800, 600)
	// Each decade takes the same height.
	assert.InDelta(t, v.Y(10)-v.Y(100), v.Y(100)-v.Y(1000), 1e-9)
	assert.InDelta(t, 300, v.Y(10)-v.Y(100), 1e-9)
}

func TestLayoutPoints(t *testing.T) {
	l := ComputeLayout(RangeInput{Len: 4, Order: 1, Max: chart.Some(4)})
	s := &chart.Series{Values: []chart.Datum{chart.V(1), chart.Missing(), chart.V(3)}}
	pts := l.Points(s)
	assert.Len(t, pts, 3)
	assert.Equal(t, 0.0, pts[0].X)
	assert.Equal(t, .25, pts[1].X)
	assert.Equal(t, .5, pts[2].X)
	assert.False(t, pts[1].Y.Present())
	assert.Equal(t, chart.Some(3), pts[2].Y)
}

func TestBoxFix(t *testing.T) {
	b := Box{XMin: 2, XMax: 2, YMin: 4, YMax: 4}.Fix()
	assert.Equal(t, 3.0, b.XMax)
	assert.Equal(t, 3.5, b.YMin)
	assert.Equal(t, 4.5, b.YMax)
	assert.True(t, b.Contains(4))
}
