package bar

import (
	"log/slog"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// PointKind classifies a point before it is drawn.
type PointKind int

const (
	PointBar     PointKind = iota // bar, tooltip and value
	PointZero                     // value exactly 0: placeholder bar only
	PointMissing                  // absent value: placeholder bar only
	PointSkipped                  // non-positive on a log axis: nothing
)

func (k PointKind) String() string {
	switch k {
	case PointZero:
		return "zero"
	case PointMissing:
		return "missing"
	case PointSkipped:
		return "skipped"
	}
	return "bar"
}

// Classify returns the kind of a datum.
func Classify(d chart.Datum, logarithmic bool) PointKind {
	v, ok := d.Value.Get()
	switch {
	case !ok:
		return PointMissing
	case logarithmic && v <= 0:
		return PointSkipped
	case v == 0:
		return PointZero
	}
	return PointBar
}

// Options configures a Plotter.
type Options struct {
	Position    LabelPosition
	FontSize    float64
	Offsets     LabelOffsets
	PrintValues bool
	XLabels     []string
	Rescaler    Rescaler // applied to secondary series
	Logger      *slog.Logger
}

// DefaultOptions returns standard plot options.
func DefaultOptions() Options {
	return Options{
		Position: LabelMiddle,
		FontSize: 16,
		Offsets:  DefaultLabelOffsets(),
	}
}

// Plotter drives one render pass over a fixed layout.
type Plotter struct {
	layout    Layout
	view      View
	surface   Surface
	format    Formatter
	opts      Options
	transpose Transpose
	log       *slog.Logger
}

// NewPlotter returns a plotter writing to surface.
func NewPlotter(l Layout, v View, s Surface, f Formatter, opts Options) *Plotter {
	p := &Plotter{
		layout:    l,
		view:      v,
		surface:   s,
		format:    f,
		opts:      opts,
		transpose: TransposeFor(l.Horizontal),
		log:       opts.Logger,
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	if p.opts.Rescaler == nil {
		p.opts.Rescaler = identity{}
	}
	return p
}

// Plot renders every primary series, then every secondary series through
// the rescaler.
func (p *Plotter) Plot(primary, secondary []chart.Series) {
	for i := range primary {
		p.RenderSeries(&primary[i], false)
	}
	for i := range secondary {
		p.RenderSeries(&secondary[i], true)
	}
}

// RenderSeries draws the points of one series in index order.
func (p *Plotter) RenderSeries(s *chart.Series, rescale bool) {
	p.surface.BeginSeries(s, rescale)
	defer p.surface.EndSeries()

	points := p.layout.Points(s)
	if rescale {
		points = p.opts.Rescaler.Rescale(points)
	}
	for i, pt := range points {
		p.renderPoint(s, i, pt, rescale)
	}
}

func (p *Plotter) renderPoint(s *chart.Series, i int, pt DataPoint, secondary bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("bar point failed", "series", s.Title, "point", i, "panic", r)
		}
	}()

	d := s.Values[i]
	kind := Classify(d, p.layout.Logarithmic)
	if kind == PointSkipped {
		p.log.Debug("skipping non-positive value on log axis", "series", s.Title, "point", i)
		return
	}

	y := pt.Y
	if kind != PointBar {
		// Placeholders sit on the baseline whatever the rescaled value.
		y = chart.None()
	}
	g := ComputeGeometry(p.layout, p.view, Slot{
		X:         pt.X,
		Y:         y,
		Series:    s.Index,
		Rounded:   s.Rounded,
		Secondary: secondary,
	})
	// The raw value decides the state: a secondary value may rescale to
	// exactly zero and still be a bar.
	g.State = StateBar
	if kind != PointBar {
		g.State = StateNoBar
	}
	meta := d.Meta
	p.surface.Rect(g.In(p.layout.Horizontal), meta)
	if kind != PointBar {
		return
	}

	if d.CI != nil {
		p.surface.ConfidenceInterval(p.interval(g, *d.CI, secondary), meta)
	}

	raw, _ := d.Value.Get()
	a := PlaceLabels(g, raw, p.layout.Zero, LabelOptions{
		Position:   p.opts.Position,
		FontSize:   p.opts.FontSize,
		Horizontal: p.layout.Horizontal,
		Offsets:    p.opts.Offsets,
	})
	text := p.format.Format(s, i)
	p.surface.Tooltip(Tooltip{
		At:     a.Tooltip,
		Value:  text,
		Align:  AlignCentered,
		XLabel: p.xLabel(i),
		Meta:   meta,
	})
	if p.opts.PrintValues {
		p.surface.StaticValue(a.Value, text, meta, AlignMiddle)
	}
}

func (p *Plotter) interval(g Geometry, ci chart.Interval, secondary bool) IntervalMark {
	ends := []DataPoint{{Y: chart.Some(ci.Low)}, {Y: chart.Some(ci.High)}}
	if secondary {
		ends = p.opts.Rescaler.Rescale(ends)
	}
	x := g.X + g.Width/2
	return IntervalMark{
		Top:        p.transpose(Point{x, p.view.Y(ends[1].Y.Or(ci.High))}),
		Bottom:     p.transpose(Point{x, p.view.Y(ends[0].Y.Or(ci.Low))}),
		Horizontal: p.layout.Horizontal,
	}
}

func (p *Plotter) xLabel(i int) string {
	if i < 0 || i >= len(p.opts.XLabels) {
		return ""
	}
	return p.opts.XLabels[i]
}
