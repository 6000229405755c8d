package bar

import (
	"math"
	"testing"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// FuzzComputeGeometry checks the geometry invariants over arbitrary
// layouts: bars stay within the width cap, inside their slot, and finite.
// Run with: go test -fuzz=FuzzComputeGeometry -fuzztime=30s ./pkg/bar/
func FuzzComputeGeometry(f *testing.F) {
	f.Add(uint8(4), uint8(3), 10.0, -5.0, 3.0, 800.0, 600.0, false)
	f.Add(uint8(1), uint8(1), 0.0, 0.0, 0.0, 800.0, 600.0, false)
	f.Add(uint8(12), uint8(7), 1e6, -1e6, 5.0, 300.0, 200.0, true)
	f.Add(uint8(0), uint8(0), 1.0, 1.0, 1.0, 1.0, 1.0, true)

	f.Fuzz(func(t *testing.T, n, order uint8, max, min, value, width, height float64, horizontal bool) {
		for _, v := range []float64{max, min, value, width, height} {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e12 {
				return
			}
		}
		if width < 1 || height < 1 {
			return
		}

		l := ComputeLayout(RangeInput{
			Min:        chart.Some(min),
			Max:        chart.Some(max),
			Len:        int(n),
			Order:      int(order),
			Horizontal: horizontal,
		})
		if !l.Box.Contains(l.Zero) {
			t.Fatalf("box %+v does not contain zero", l.Box)
		}
		v := ViewFor(l, width, height)
		slot, _ := SlotWidth(l, v)

		for s := 0; s < l.Order; s++ {
			for i := 0; i < l.Len && i < len(l.Fences); i++ {
				g := ComputeGeometry(l, v, Slot{X: l.Fences[i], Y: chart.Some(value), Series: s})
				if math.Abs(g.Width) > MaxBarWidth {
					t.Fatalf("width %v exceeds cap", g.Width)
				}
				if math.Abs(g.Width)*float64(l.Order) > math.Abs(slot)+1e-6 {
					t.Fatalf("%d bars of %v overflow slot %v", l.Order, g.Width, slot)
				}
				for _, c := range []float64{g.X, g.Y, g.Width, g.Height} {
					if math.IsNaN(c) || math.IsInf(c, 0) {
						t.Fatalf("non-finite geometry %+v", g)
					}
				}
			}
		}
	})
}
