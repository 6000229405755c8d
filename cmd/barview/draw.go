package main

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/bar-toolkit/pkg/bar"
	"github.com/ha1tch/bar-toolkit/pkg/barfile"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleTitle      = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleAxis       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLabel      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleValue      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSelected   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)

	seriesColors = []tcell.Color{
		tcell.ColorBlue,
		tcell.ColorOrange,
		tcell.ColorGreen,
		tcell.ColorPurple,
		tcell.ColorRed,
		tcell.ColorTeal,
	}
)

const (
	barRune = '█'
	helpBar = "h:orient  l:log  v:values  p:position  tab:select  e:export  t:type  s:save  q:quit"
)

// termBar is a drawn bar in screen cells.
type termBar struct {
	x0, y0, x1, y1 int
	series         string
	tip            bar.Tooltip
}

// termSurface draws bars as block characters. Coordinates are plot area
// cells offset by (dx, dy).
type termSurface struct {
	screen tcell.Screen
	dx, dy int
	style  tcell.Style
	series string

	pending *termBar
	bars    []termBar
}

func (s *termSurface) BeginSeries(se *chart.Series, secondary bool) {
	s.style = styleDefault.Foreground(seriesColors[se.Index%len(seriesColors)])
	if secondary {
		s.style = s.style.Dim(true)
	}
	s.series = se.Title
}

func (s *termSurface) EndSeries() {
	s.pending = nil
}

func (s *termSurface) Rect(g bar.Geometry, _ *chart.Metadata) {
	s.pending = nil
	if g.State == bar.StateNoBar {
		return
	}
	x0, y0, x1, y1 := cells(g)
	b := termBar{x0: x0 + s.dx, y0: y0 + s.dy, x1: x1 + s.dx, y1: y1 + s.dy, series: s.series}
	fill(s.screen, b, barRune, s.style)
	s.pending = &b
}

func (s *termSurface) Tooltip(t bar.Tooltip) {
	if s.pending == nil {
		return
	}
	s.pending.tip = t
	s.bars = append(s.bars, *s.pending)
}

func (s *termSurface) StaticValue(at bar.Point, text string, _ *chart.Metadata, _ string) {
	x := int(math.Round(at.X)) + s.dx - len([]rune(text))/2
	y := int(math.Round(at.Y)) + s.dy
	drawText(s.screen, x, y, text, styleValue)
}

// Confidence intervals are too fine for cells.
func (s *termSurface) ConfidenceInterval(bar.IntervalMark, *chart.Metadata) {}

// cells returns the half-open cell range covered by g, at least one cell
// wide and high.
func cells(g bar.Geometry) (x0, y0, x1, y1 int) {
	n := g.Normalized()
	x0 = int(math.Round(n.X))
	y0 = int(math.Round(n.Y))
	x1 = int(math.Round(n.X + n.Width))
	y1 = int(math.Round(n.Y + n.Height))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func fill(screen tcell.Screen, b termBar, r rune, style tcell.Style) {
	for y := b.y0; y < b.y1; y++ {
		for x := b.x0; x < b.x1; x++ {
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	c := v.view()

	title := c.Title
	if title == "" {
		title = filepath.Base(v.filename)
	}
	drawText(v.screen, max(0, (w-len([]rune(title)))/2), 0, title, styleTitle)

	// Rows: title, plot, category labels, help, status.
	gutter := 0
	bottom := 3
	if c.Horizontal {
		for i := 0; i < c.Len(); i++ {
			gutter = max(gutter, len([]rune(c.XLabel(i)))+1)
		}
		gutter = min(gutter, w/4)
		bottom = 2
	}
	area := barfile.PlotArea{
		Left:   float64(gutter),
		Top:    1,
		Width:  float64(max(w-gutter, 1)),
		Height: float64(max(h-1-bottom, 1)),
	}

	p, err := barfile.NewPlanIn(c, area, v.log)
	if err != nil {
		v.bars = nil
		drawText(v.screen, 0, 1, "Error: "+err.Error(), styleMsgError)
		v.drawStatusBar(w, h)
		return
	}
	// Cells, not pixels.
	p.Options.FontSize = 1
	p.Options.Offsets = bar.LabelOffsets{Horizontal: 1}

	v.drawAxis(p)

	s := &termSurface{screen: v.screen, dx: gutter, dy: 1}
	p.Run(s, nil)
	v.bars = s.bars
	if v.selected >= len(v.bars) {
		v.selected = -1
	}
	if v.selected >= 0 {
		fill(v.screen, v.bars[v.selected], barRune, styleSelected)
	}

	drawText(v.screen, 0, h-2, helpBar, styleHelp)
	v.drawStatusBar(w, h)
}

func (v *Viewer) drawAxis(p *barfile.Plan) {
	dx, dy := int(p.Area.Left), int(p.Area.Top)
	from, to := p.Baseline()
	if p.Layout.Horizontal {
		x := int(math.Round(from.X)) + dx
		for y := int(from.Y) + dy; y < int(to.Y)+dy; y++ {
			v.screen.SetContent(x, y, '│', nil, styleAxis)
		}
	} else {
		y := int(math.Round(from.Y)) + dy
		for x := int(from.X) + dx; x < int(to.X)+dx; x++ {
			v.screen.SetContent(x, y, '─', nil, styleAxis)
		}
	}

	for i, at := range p.CategoryAnchors() {
		label := p.Chart.XLabel(i)
		if label == "" {
			continue
		}
		n := len([]rune(label))
		if p.Layout.Horizontal {
			drawText(v.screen, max(0, dx-n-1), int(math.Round(at.Y))+dy, label, styleLabel)
		} else {
			// Category labels sit on the row below the plot.
			drawText(v.screen, int(math.Round(at.X))+dx-n/2, dy+int(p.Area.Height), label, styleLabel)
		}
	}
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	info := fmt.Sprintf(" %s  %s", filepath.Base(v.filename), orientationName(v.config.Horizontal))
	if v.selected >= 0 && v.selected < len(v.bars) {
		b := v.bars[v.selected]
		info += fmt.Sprintf("  [%s", b.series)
		if b.tip.XLabel != "" {
			info += " " + b.tip.XLabel
		}
		info += ": " + b.tip.Value + "]"
	}
	drawText(v.screen, 0, y, info, styleStatus)

	if v.message != "" {
		style := styleStatus
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		drawText(v.screen, max(len([]rune(info))+2, w-len([]rune(v.message))-1), y, v.message, style)
	}
}
