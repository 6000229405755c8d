package barfile

import (
	"log/slog"
	"math"

	"github.com/ha1tch/bar-toolkit/pkg/bar"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

const (
	titleSpace  = 35 // room for the chart title
	labelSpace  = 20 // room for category labels below a vertical chart
	labelGutter = 60 // room for category labels left of a horizontal chart
)

// PlotArea is the part of the canvas the bars are drawn in.
type PlotArea struct {
	Left, Top     float64
	Width, Height float64
}

// AreaFor returns the plot area of a chart: the canvas less its margin,
// the title and the category labels.
func AreaFor(c *chart.Chart) PlotArea {
	m := c.Margin
	a := PlotArea{Left: m, Top: m}
	if c.Title != "" {
		a.Top += titleSpace
	}
	bottom := m
	if len(c.XLabels) > 0 {
		if c.Horizontal {
			a.Left += labelGutter
		} else {
			bottom += labelSpace
		}
	}
	a.Width = math.Max(float64(c.Width)-a.Left-m, 1)
	a.Height = math.Max(float64(c.Height)-a.Top-bottom, 1)
	return a
}

// Plan is a prepared render pass: the layout, view and plot options of a
// chart. Surfaces receive coordinates relative to Area.
type Plan struct {
	Chart   *chart.Chart
	Area    PlotArea
	Layout  bar.Layout
	View    bar.View
	Options bar.Options
}

// NewPlan validates a chart and computes its layout over AreaFor(c). A nil
// logger means slog.Default().
func NewPlan(c *chart.Chart, log *slog.Logger) (*Plan, error) {
	return NewPlanIn(c, AreaFor(c), log)
}

// NewPlanIn is NewPlan over an explicit plot area.
func NewPlanIn(c *chart.Chart, area PlotArea, log *slog.Logger) (*Plan, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	zero := c.Baseline()
	if c.Logarithmic {
		zero = bar.LogZero(zero, c.PositiveMin())
	}
	min, max := c.ValueRange(false)
	if c.Range != nil {
		min, max = chart.Some(c.Range[0]), chart.Some(c.Range[1])
	}

	l := bar.ComputeLayout(bar.RangeInput{
		Min:         min,
		Max:         max,
		Zero:        zero,
		Len:         c.Len(),
		Order:       c.Order(),
		Horizontal:  c.Horizontal,
		Logarithmic: c.Logarithmic,
	})
	opts := bar.DefaultOptions()
	opts.Position = bar.ParseLabelPosition(c.PrintValuesPosition)
	opts.FontSize = c.ValueFontSize
	opts.PrintValues = c.PrintValues
	opts.XLabels = c.XLabels
	opts.Logger = log
	if len(c.Secondary()) > 0 {
		smin, smax := c.ValueRange(true)
		opts.Rescaler = bar.NewRescaler(smin, smax, zero, l.Box)
	}

	log.Debug("layout computed",
		"categories", l.Len, "series", l.Order,
		"ymin", l.Box.YMin, "ymax", l.Box.YMax, "zero", l.Zero)

	return &Plan{
		Chart:   c,
		Area:    area,
		Layout:  l,
		View:    bar.ViewFor(l, area.Width, area.Height),
		Options: opts,
	}, nil
}

// Run draws every series of the chart onto s.
func (p *Plan) Run(s bar.Surface, f bar.Formatter) {
	if f == nil {
		f = FormatterFor(p.Chart)
	}
	bar.NewPlotter(p.Layout, p.View, s, f, p.Options).Plot(p.Chart.Primary(), p.Chart.Secondary())
}

// CategoryAnchors returns the surface position of each category label
// relative to the plot area, just outside the category axis.
func (p *Plan) CategoryAnchors() []bar.Point {
	pts := make([]bar.Point, len(p.Layout.Centers))
	for i, c := range p.Layout.Centers {
		if p.Layout.Horizontal {
			pts[i] = bar.Point{X: -8, Y: p.View.X(c)}
		} else {
			pts[i] = bar.Point{X: p.View.X(c), Y: p.Area.Height + 14}
		}
	}
	return pts
}

// Baseline returns the segment of the zero line in plot area coordinates.
func (p *Plan) Baseline() (from, to bar.Point) {
	z := p.View.Y(p.Layout.Zero)
	if p.Layout.Horizontal {
		return bar.Point{X: z, Y: 0}, bar.Point{X: z, Y: p.Area.Height}
	}
	return bar.Point{X: 0, Y: z}, bar.Point{X: p.Area.Width, Y: z}
}
