// Package chart provides the grouped bar chart data model.
package chart

import (
	"errors"
	"fmt"
	"math"
)

// Label positions for printed values.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
	PositionMiddle = "middle"
)

var (
	// ErrNoSeries indicates a chart without any series.
	ErrNoSeries = errors.New("chart has no series")

	// ErrLogRange indicates an explicit range or baseline unusable on a
	// logarithmic axis.
	ErrLogRange = errors.New("logarithmic axis needs a positive range")
)

// Series is one ordered sequence of values plotted across all categories.
type Series struct {
	Title     string
	Values    []Datum
	Secondary bool    // plotted against the secondary value axis
	Rounded   float64 // corner radius, 0 for square bars
	Index     int     // position among all series, set by Reindex
}

// Meta returns the metadata of point i, or nil.
func (s *Series) Meta(i int) *Metadata {
	if i < 0 || i >= len(s.Values) {
		return nil
	}
	return s.Values[i].Meta
}

// Config holds chart-wide options.
type Config struct {
	Width               int
	Height              int
	Title               string
	Horizontal          bool
	Logarithmic         bool
	Zero                *float64    // baseline, 0 when nil
	Range               *[2]float64 // explicit primary value range
	XLabels             []string
	PrintValues         bool
	PrintValuesPosition string
	ValueFontSize       float64
	Margin              float64
	Locale              string
	Precision           int // significant digits of formatted values
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Width:               800,
		Height:              600,
		PrintValuesPosition: PositionMiddle,
		ValueFontSize:       16,
		Margin:              20,
		Locale:              "en",
		Precision:           6,
	}
}

// Chart is a grouped bar chart definition.
type Chart struct {
	Config
	Series []Series
}

// New creates a chart with the given config. Zero fields take defaults.
func New(cfg Config) *Chart {
	c := &Chart{Config: cfg, Series: make([]Series, 0)}
	c.applyDefaults()
	return c
}

func (c *Chart) applyDefaults() {
	def := DefaultConfig()
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.PrintValuesPosition == "" {
		c.PrintValuesPosition = def.PrintValuesPosition
	}
	if c.ValueFontSize == 0 {
		c.ValueFontSize = def.ValueFontSize
	}
	if c.Margin == 0 {
		c.Margin = def.Margin
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.Precision == 0 {
		c.Precision = def.Precision
	}
}

// AddSeries appends a series and reindexes.
func (c *Chart) AddSeries(s Series) {
	c.Series = append(c.Series, s)
	c.Reindex()
}

// Reindex assigns series indexes: primary series first, then secondary,
// each group in definition order.
func (c *Chart) Reindex() {
	i := 0
	for k := range c.Series {
		if !c.Series[k].Secondary {
			c.Series[k].Index = i
			i++
		}
	}
	for k := range c.Series {
		if c.Series[k].Secondary {
			c.Series[k].Index = i
			i++
		}
	}
}

// Primary returns the series on the primary axis.
func (c *Chart) Primary() []Series {
	return c.filter(false)
}

// Secondary returns the series on the secondary axis.
func (c *Chart) Secondary() []Series {
	return c.filter(true)
}

func (c *Chart) filter(secondary bool) []Series {
	var out []Series
	for _, s := range c.Series {
		if s.Secondary == secondary {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of categories.
func (c *Chart) Len() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	return n
}

// Order returns the number of series sharing a category slot.
func (c *Chart) Order() int {
	return len(c.Series)
}

// Baseline returns the configured zero.
func (c *Chart) Baseline() float64 {
	if c.Zero == nil {
		return 0
	}
	return *c.Zero
}

// ValueRange returns the min and max of the present values of the primary
// or secondary series. Under a logarithmic axis only positive values count.
// Both are absent when no value qualifies.
func (c *Chart) ValueRange(secondary bool) (min, max Value) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		if s.Secondary != secondary {
			continue
		}
		for _, d := range s.Values {
			v, ok := d.Value.Get()
			if !ok || math.IsNaN(v) {
				continue
			}
			if c.Logarithmic && v <= 0 {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return None(), None()
	}
	return Some(lo), Some(hi)
}

// PositiveMin returns the smallest positive value over all series.
func (c *Chart) PositiveMin() Value {
	min := None()
	for _, s := range c.Series {
		for _, d := range s.Values {
			v, ok := d.Value.Get()
			if !ok || v <= 0 {
				continue
			}
			if m, ok := min.Get(); !ok || v < m {
				min = Some(v)
			}
		}
	}
	return min
}

// XLabel returns the category label at i, or "".
func (c *Chart) XLabel(i int) string {
	if i < 0 || i >= len(c.XLabels) {
		return ""
	}
	return c.XLabels[i]
}

// Validate checks if the chart is well-formed.
func (c *Chart) Validate() error {
	if len(c.Series) == 0 {
		return ErrNoSeries
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	switch c.PrintValuesPosition {
	case PositionTop, PositionBottom, PositionMiddle, "":
	default:
		return fmt.Errorf("invalid value position %q", c.PrintValuesPosition)
	}
	if c.Range != nil {
		if c.Range[0] > c.Range[1] {
			return fmt.Errorf("invalid range [%g, %g]", c.Range[0], c.Range[1])
		}
		if c.Logarithmic && c.Range[0] <= 0 {
			return ErrLogRange
		}
	}
	if c.Logarithmic && c.Zero != nil && *c.Zero < 0 {
		return fmt.Errorf("baseline %g: %w", *c.Zero, ErrLogRange)
	}
	for i, s := range c.Series {
		for j, d := range s.Values {
			v, ok := d.Value.Get()
			if ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
				return fmt.Errorf("series %d (%s) value %d is not finite", i, s.Title, j)
			}
			if d.CI != nil && d.CI.Low > d.CI.High {
				return fmt.Errorf("series %d (%s) value %d has inverted interval", i, s.Title, j)
			}
		}
	}
	return nil
}
