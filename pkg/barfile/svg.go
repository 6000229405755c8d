package barfile

import (
	"fmt"
	"html"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ha1tch/bar-toolkit/pkg/bar"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// SVGOptions controls SVG rendering.
type SVGOptions struct {
	Formatter bar.Formatter // nil: FormatterFor(chart)
	Logger    *slog.Logger
	TitleSize int // 0 = 18
	LabelSize int // category label size, 0 = 12
}

// GenerateSVG renders a chart as a standalone SVG document.
func GenerateSVG(c *chart.Chart, opts SVGOptions) (string, error) {
	if opts.TitleSize == 0 {
		opts.TitleSize = 18
	}
	if opts.LabelSize == 0 {
		opts.LabelSize = 12
	}
	p, err := NewPlan(c, opts.Logger)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .background { fill: white; }
  .title { font-family: sans-serif; font-size: %dpx; font-weight: bold; text-anchor: middle; }
  .axis { stroke: #333; stroke-width: 1; }
  .x-label { font-family: sans-serif; font-size: %dpx; fill: #333; }
  .rect { stroke-width: 1; }
  .no-bar { fill: none; stroke: none; }
  .value { font-family: sans-serif; font-size: %gpx; fill: #333; text-anchor: middle; dominant-baseline: middle; }
  .ci { fill: none; stroke: #333; stroke-width: 1; }
  .serie-0 .rect { fill: #1565c0; } .serie-1 .rect { fill: #e65100; } .serie-2 .rect { fill: #2e7d32; }
  .serie-3 .rect { fill: #6a1b9a; } .serie-4 .rect { fill: #c62828; } .serie-5 .rect { fill: #00838f; }
  .secondary .rect { fill-opacity: .7; }
</style>
`, c.Width, c.Height, c.Width, c.Height, opts.TitleSize, opts.LabelSize, c.ValueFontSize)

	fmt.Fprintf(&sb, `<rect class="background" width="%d" height="%d"/>
`, c.Width, c.Height)
	if c.Title != "" {
		fmt.Fprintf(&sb, `<text x="%s" y="%s" class="title">%s</text>
`, num(float64(c.Width)/2), num(c.Margin+titleSpace/2+6), html.EscapeString(c.Title))
	}

	fmt.Fprintf(&sb, `<g class="plot" transform="translate(%s, %s)">
`, num(p.Area.Left), num(p.Area.Top))

	from, to := p.Baseline()
	fmt.Fprintf(&sb, `<path d="M%s %s L%s %s" class="axis baseline"/>
`, num(from.X), num(from.Y), num(to.X), num(to.Y))

	anchor := "middle"
	if c.Horizontal {
		anchor = "end"
	}
	for i, at := range p.CategoryAnchors() {
		label := c.XLabel(i)
		if label == "" {
			continue
		}
		fmt.Fprintf(&sb, `<text x="%s" y="%s" class="x-label" text-anchor="%s" dominant-baseline="middle">%s</text>
`, num(at.X), num(at.Y), anchor, html.EscapeString(label))
	}

	s := &svgSurface{sb: &sb}
	p.Run(s, opts.Formatter)

	sb.WriteString("</g>\n</svg>\n")
	return sb.String(), nil
}

// svgSurface writes bars as SVG elements. Each bar is a group holding the
// rectangle and everything registered for it until the next bar.
type svgSurface struct {
	sb     *strings.Builder
	inBar  bool
	inLink bool
}

func (s *svgSurface) BeginSeries(se *chart.Series, secondary bool) {
	class := fmt.Sprintf("series serie-%d color-%d", se.Index, se.Index)
	if secondary {
		class += " secondary"
	}
	fmt.Fprintf(s.sb, `<g class="%s">
`, class)
	if se.Title != "" {
		fmt.Fprintf(s.sb, `<title>%s</title>
`, html.EscapeString(se.Title))
	}
}

func (s *svgSurface) EndSeries() {
	s.closeBar()
	s.sb.WriteString("</g>\n")
}

func (s *svgSurface) Rect(g bar.Geometry, meta *chart.Metadata) {
	s.closeBar()
	s.inBar = true

	if meta != nil && meta.Link != "" {
		s.inLink = true
		fmt.Fprintf(s.sb, `<a xlink:href="%s" target="_blank">
`, html.EscapeString(meta.Link))
	}
	s.sb.WriteString("<g class=\"bar\">\n")

	n := g.Normalized()
	fmt.Fprintf(s.sb, `<rect x="%s" y="%s" rx="%s" ry="%s" width="%s" height="%s" class="%s"%s/>
`, num(n.X), num(n.Y), num(n.Radius), num(n.Radius), num(n.Width), num(n.Height),
		n.State.Class(), nodeAttrs(meta))

	if meta != nil && meta.Label != "" {
		fmt.Fprintf(s.sb, `<desc class="label">%s</desc>
`, html.EscapeString(meta.Label))
	}
}

func (s *svgSurface) Tooltip(t bar.Tooltip) {
	fmt.Fprintf(s.sb, `<desc class="value">%s</desc>
<desc class="x %s">%s</desc>
<desc class="y %s">%s</desc>
`, html.EscapeString(t.Value), t.Align, num(t.At.X), t.Align, num(t.At.Y))
	if t.XLabel != "" {
		fmt.Fprintf(s.sb, `<desc class="x_label">%s</desc>
`, html.EscapeString(t.XLabel))
	}
}

func (s *svgSurface) StaticValue(at bar.Point, text string, meta *chart.Metadata, align string) {
	fmt.Fprintf(s.sb, `<text x="%s" y="%s" class="value %s"%s>%s</text>
`, num(at.X), num(at.Y), align, styleAttr(meta), html.EscapeString(text))
}

const whisker = 5

func (s *svgSurface) ConfidenceInterval(ci bar.IntervalMark, meta *chart.Metadata) {
	t, b := ci.Top, ci.Bottom
	var d string
	if ci.Horizontal {
		d = fmt.Sprintf("M%s %s v%d M%s %s H%s M%s %s v%d",
			num(t.X), num(t.Y-whisker), 2*whisker,
			num(t.X), num(t.Y), num(b.X),
			num(b.X), num(b.Y-whisker), 2*whisker)
	} else {
		d = fmt.Sprintf("M%s %s h%d M%s %s V%s M%s %s h%d",
			num(t.X-whisker), num(t.Y), 2*whisker,
			num(t.X), num(t.Y), num(b.Y),
			num(b.X-whisker), num(b.Y), 2*whisker)
	}
	fmt.Fprintf(s.sb, `<path d="%s" class="ci"/>
`, d)
}

func (s *svgSurface) closeBar() {
	if !s.inBar {
		return
	}
	s.sb.WriteString("</g>\n")
	if s.inLink {
		s.sb.WriteString("</a>\n")
	}
	s.inBar, s.inLink = false, false
}

// nodeAttrs renders the extra attributes a point's metadata puts on its
// rectangle, sorted by name.
func nodeAttrs(meta *chart.Metadata) string {
	if meta == nil {
		return ""
	}
	var sb strings.Builder
	keys := make([]string, 0, len(meta.Node))
	for k := range meta.Node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, ` %s="%s"`, html.EscapeString(k), html.EscapeString(meta.Node[k]))
	}
	sb.WriteString(styleAttr(meta))
	return sb.String()
}

func styleAttr(meta *chart.Metadata) string {
	if meta == nil {
		return ""
	}
	var style []string
	if meta.Color != "" {
		style = append(style, "fill: "+meta.Color)
	}
	if meta.Style != "" {
		style = append(style, meta.Style)
	}
	if len(style) == 0 {
		return ""
	}
	return fmt.Sprintf(` style="%s"`, html.EscapeString(strings.Join(style, "; ")))
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // no negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
