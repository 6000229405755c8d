// Native PNG rendering of bar charts.
// Mirrors the SVG output using Go's image packages.

package barfile

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ha1tch/bar-toolkit/pkg/bar"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Formatter bar.Formatter // nil: FormatterFor(chart)
	Logger    *slog.Logger
	Scale     int // supersampling factor, 0 = 4
}

// Colors used in rendering
var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{51, 51, 51, 255} // #333

	palette = []color.RGBA{
		{21, 101, 192, 255}, // #1565c0
		{230, 81, 0, 255},   // #e65100
		{46, 125, 50, 255},  // #2e7d32
		{106, 27, 154, 255}, // #6a1b9a
		{198, 40, 40, 255},  // #c62828
		{0, 131, 143, 255},  // #00838f
	}
)

// renderContext holds rendering parameters including scale
type renderContext struct {
	img       *image.RGBA
	scale     float64 // multiplier for every coordinate
	lineWidth float64
	face      font.Face
	titleFace font.Face
}

func newRenderContext(img *image.RGBA, scale int, fontSize float64) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	// No hinting: we supersample instead.
	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    size * float64(scale),
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}
	face, err := newFace(fontSize)
	if err != nil {
		return nil, err
	}
	titleFace, err := newFace(18)
	if err != nil {
		return nil, err
	}
	return &renderContext{
		img:       img,
		scale:     float64(scale),
		lineWidth: float64(scale),
		face:      face,
		titleFace: titleFace,
	}, nil
}

// RenderPNG renders a chart to PNG format.
// Uses supersampling for smoother output.
func RenderPNG(c *chart.Chart, w io.Writer, opts PNGOptions) error {
	if opts.Scale <= 0 {
		opts.Scale = 4
	}
	p, err := NewPlan(c, opts.Logger)
	if err != nil {
		return err
	}

	large := image.NewRGBA(image.Rect(0, 0, c.Width*opts.Scale, c.Height*opts.Scale))
	ctx, err := newRenderContext(large, opts.Scale, c.ValueFontSize)
	if err != nil {
		return err
	}
	draw.Draw(large, large.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	if c.Title != "" {
		drawTextCentered(ctx, ctx.titleFace, float64(c.Width)/2, c.Margin+titleSpace/2, c.Title, colorBlack)
	}

	s := &pngSurface{ctx: ctx, dx: p.Area.Left, dy: p.Area.Top}
	from, to := p.Baseline()
	s.line(from, to, colorBlack)
	for i, at := range p.CategoryAnchors() {
		label := c.XLabel(i)
		if label == "" {
			continue
		}
		if c.Horizontal {
			width := float64(font.MeasureString(ctx.face, label).Ceil()) / ctx.scale
			at.X -= width / 2
		}
		drawTextCentered(ctx, ctx.face, at.X+s.dx, at.Y+s.dy, label, colorBlack)
	}
	p.Run(s, opts.Formatter)

	// Downsample to target size using high-quality interpolation
	final := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return png.Encode(w, final)
}

// pngSurface rasterizes bars. Coordinates are relative to the plot area
// at (dx, dy) and in output pixels; the context scale is applied on draw.
type pngSurface struct {
	ctx    *renderContext
	dx, dy float64
	fill   color.RGBA
}

func (s *pngSurface) BeginSeries(se *chart.Series, secondary bool) {
	s.fill = palette[se.Index%len(palette)]
	if secondary {
		s.fill = fade(s.fill, .7)
	}
}

func (s *pngSurface) EndSeries() {}

func (s *pngSurface) Rect(g bar.Geometry, meta *chart.Metadata) {
	if g.State == bar.StateNoBar {
		return
	}
	n := g.Normalized()
	sc := s.ctx.scale
	r := image.Rect(
		int(math.Round((n.X+s.dx)*sc)),
		int(math.Round((n.Y+s.dy)*sc)),
		int(math.Round((n.X+n.Width+s.dx)*sc)),
		int(math.Round((n.Y+n.Height+s.dy)*sc)),
	)
	fill := s.fill
	if meta != nil && meta.Color != "" {
		if c, ok := parseHexColor(meta.Color); ok {
			fill = c
		}
	}
	if n.Radius <= 0 {
		draw.Draw(s.ctx.img, r, image.NewUniform(fill), image.Point{}, draw.Over)
		return
	}
	drawRoundRect(s.ctx, r, n.Radius*sc, fill)
}

// Tooltip has no raster form.
func (s *pngSurface) Tooltip(bar.Tooltip) {}

func (s *pngSurface) StaticValue(at bar.Point, text string, _ *chart.Metadata, _ string) {
	drawTextCentered(s.ctx, s.ctx.face, at.X+s.dx, at.Y+s.dy, text, colorBlack)
}

func (s *pngSurface) ConfidenceInterval(ci bar.IntervalMark, _ *chart.Metadata) {
	t, b := ci.Top, ci.Bottom
	s.line(t, b, colorBlack)
	for _, p := range []bar.Point{t, b} {
		if ci.Horizontal {
			s.line(bar.Point{X: p.X, Y: p.Y - whisker}, bar.Point{X: p.X, Y: p.Y + whisker}, colorBlack)
		} else {
			s.line(bar.Point{X: p.X - whisker, Y: p.Y}, bar.Point{X: p.X + whisker, Y: p.Y}, colorBlack)
		}
	}
}

func (s *pngSurface) line(a, b bar.Point, c color.Color) {
	sc := s.ctx.scale
	drawLine(s.ctx, (a.X+s.dx)*sc, (a.Y+s.dy)*sc, (b.X+s.dx)*sc, (b.Y+s.dy)*sc, c)
}

// drawLine strokes the segment as a quad of ctx.lineWidth, antialiased.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	hw := ctx.lineWidth / 2
	if x1 == x2 && y1 == y2 {
		// A dot is a square of the line width.
		x1, x2 = x1-hw, x2+hw
	}
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	// Half-width normal to the segment.
	nx := -dy / dist * hw
	ny := dx / dist * hw

	b := ctx.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x2+nx), float32(y2+ny))
	z.LineTo(float32(x2-nx), float32(y2-ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.ClosePath()
	z.Draw(ctx.img, b, image.NewUniform(c), image.Point{})
}

// drawRoundRect fills r with corners of radius rad.
func drawRoundRect(ctx *renderContext, r image.Rectangle, rad float64, c color.RGBA) {
	rad = math.Min(rad, math.Min(float64(r.Dx()), float64(r.Dy()))/2)
	src := image.NewUniform(c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		// Inset of this row at the corners.
		inset := 0.0
		fy := float64(y) + .5
		top := float64(r.Min.Y) + rad
		bottom := float64(r.Max.Y) - rad
		switch {
		case fy < top:
			d := top - fy
			inset = rad - math.Sqrt(math.Max(rad*rad-d*d, 0))
		case fy > bottom:
			d := fy - bottom
			inset = rad - math.Sqrt(math.Max(rad*rad-d*d, 0))
		}
		row := image.Rect(r.Min.X+int(inset), y, r.Max.X-int(inset), y+1)
		draw.Draw(ctx.img, row, src, image.Point{}, draw.Over)
	}
}

// drawTextCentered draws text centered on (x, y), given in output pixels.
func drawTextCentered(ctx *renderContext, face font.Face, x, y float64, text string, c color.Color) {
	width := font.MeasureString(face, text).Ceil()

	// Visual centering of caps: the baseline sits about a third of the
	// ascent below the center.
	ascent := face.Metrics().Ascent.Ceil()
	px := int(x*ctx.scale) - width/2
	py := int(y*ctx.scale) + int(float64(ascent)*0.35)

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(px), Y: fixed.I(py)},
	}
	d.DrawString(text)
}

// fade scales a premultiplied color by alpha a.
func fade(c color.RGBA, a float64) color.RGBA {
	m := func(v uint8) uint8 { return uint8(float64(v) * a) }
	return color.RGBA{m(c.R), m(c.G), m(c.B), m(c.A)}
}

// parseHexColor parses #rgb and #rrggbb.
func parseHexColor(s string) (color.RGBA, bool) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, false
	}
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	s = s[1:]
	var v [3]uint8
	switch len(s) {
	case 3:
		for i := 0; i < 3; i++ {
			h, ok := hex(s[i])
			if !ok {
				return color.RGBA{}, false
			}
			v[i] = h * 17
		}
	case 6:
		for i := 0; i < 3; i++ {
			hi, ok1 := hex(s[2*i])
			lo, ok2 := hex(s[2*i+1])
			if !ok1 || !ok2 {
				return color.RGBA{}, false
			}
			v[i] = hi<<4 | lo
		}
	default:
		return color.RGBA{}, false
	}
	return color.RGBA{v[0], v[1], v[2], 255}, true
}
