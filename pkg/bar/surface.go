package bar

import "github.com/ha1tch/bar-toolkit/pkg/chart"

// Tooltip alignment modes.
const (
	AlignCentered = "centered"
	AlignMiddle   = "middle"
)

// Tooltip is a hover anchor registration.
type Tooltip struct {
	At     Point
	Value  string
	Align  string
	XLabel string
	Meta   *chart.Metadata
}

// IntervalMark is a confidence interval in surface space. Whiskers are
// drawn perpendicular to the segment Top-Bottom.
type IntervalMark struct {
	Top, Bottom Point
	Horizontal  bool
}

// Surface receives everything a render pass produces. Coordinates handed
// to a Surface are already in surface space.
type Surface interface {
	BeginSeries(s *chart.Series, secondary bool)
	// Rect draws a bar. Width and height may be negative.
	Rect(g Geometry, meta *chart.Metadata)
	Tooltip(t Tooltip)
	StaticValue(at Point, text string, meta *chart.Metadata, align string)
	ConfidenceInterval(ci IntervalMark, meta *chart.Metadata)
	EndSeries()
}

// Formatter returns the display string of point i of a series.
type Formatter interface {
	Format(s *chart.Series, i int) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(s *chart.Series, i int) string

func (f FormatterFunc) Format(s *chart.Series, i int) string {
	return f(s, i)
}
