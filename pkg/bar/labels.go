package bar

import "github.com/ha1tch/bar-toolkit/pkg/chart"

// LabelPosition is where a printed value sits relative to its bar.
type LabelPosition string

const (
	LabelTop    LabelPosition = chart.PositionTop
	LabelBottom LabelPosition = chart.PositionBottom
	LabelMiddle LabelPosition = chart.PositionMiddle
)

// ParseLabelPosition maps a config string to a position; unknown values
// are middle.
func ParseLabelPosition(s string) LabelPosition {
	switch LabelPosition(s) {
	case LabelTop, LabelBottom:
		return LabelPosition(s)
	}
	return LabelMiddle
}

// LabelOffsets are the extra nudges applied to a top label, balancing cap
// height against the baseline. Tuned by eye.
type LabelOffsets struct {
	Horizontal float64 // added along the value axis of horizontal charts
	Vertical   float64 // subtracted along the value axis of vertical charts
}

// DefaultLabelOffsets returns the standard offsets.
func DefaultLabelOffsets() LabelOffsets {
	return LabelOffsets{Horizontal: 11, Vertical: 9}
}

// LabelOptions configures PlaceLabels.
type LabelOptions struct {
	Position   LabelPosition
	FontSize   float64
	Horizontal bool
	Offsets    LabelOffsets
}

// Anchors are the surface points of a bar's tooltip and printed value.
type Anchors struct {
	Tooltip Point
	Value   Point
}

// PlaceLabels computes the tooltip and value anchors of a bar geometry in
// surface space. g is in the bar frame; value is the raw value, compared
// to zero for direction.
func PlaceLabels(g Geometry, value, zero float64, o LabelOptions) Anchors {
	t := TransposeFor(o.Horizontal)
	center := t(g.Center())
	far := t(Point{g.X, g.Y})                       // value end
	near := t(Point{g.X + g.Width, g.Y + g.Height}) // baseline end

	sign := 1.0
	if value < zero {
		sign = -1
	}
	half := o.FontSize / 2

	label := center
	switch o.Position {
	case LabelTop:
		if o.Horizontal {
			label = Point{far.X + sign*half + o.Offsets.Horizontal, center.Y}
		} else {
			label = Point{center.X, far.Y - sign*half - o.Offsets.Vertical}
		}
	case LabelBottom:
		if o.Horizontal {
			label = Point{near.X + sign*half, center.Y}
		} else {
			label = Point{center.X, near.Y - sign*half}
		}
	}
	return Anchors{Tooltip: center, Value: label}
}
