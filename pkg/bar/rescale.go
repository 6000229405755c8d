package bar

import (
	"math"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// Rescaler maps secondary series points into the primary value range.
type Rescaler interface {
	Rescale(pts []DataPoint) []DataPoint
}

// LinearRescaler maps [FromMin, FromMax] linearly onto [ToMin, ToMax].
type LinearRescaler struct {
	FromMin, FromMax float64
	ToMin, ToMax     float64
}

// NewRescaler returns the rescaler of a secondary range onto the primary
// box. The secondary range is extended to include zero like the primary.
func NewRescaler(min, max chart.Value, zero float64, primary Box) LinearRescaler {
	lo := math.Min(min.Or(zero), zero)
	hi := math.Max(max.Or(zero), zero)
	return LinearRescaler{
		FromMin: lo,
		FromMax: hi,
		ToMin:   primary.YMin,
		ToMax:   primary.YMax,
	}
}

// Map rescales one value.
func (r LinearRescaler) Map(y float64) float64 {
	from := math.Abs(r.FromMax - r.FromMin)
	if from == 0 {
		from = 1
	}
	return r.ToMin + (y-r.FromMin)*(r.ToMax-r.ToMin)/from
}

func (r LinearRescaler) Rescale(pts []DataPoint) []DataPoint {
	out := make([]DataPoint, len(pts))
	for i, p := range pts {
		out[i] = p
		if v, ok := p.Y.Get(); ok {
			out[i].Y = chart.Some(r.Map(v))
		}
	}
	return out
}

// identity leaves points untouched.
type identity struct{}

func (identity) Rescale(pts []DataPoint) []DataPoint { return pts }
