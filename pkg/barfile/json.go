// Package barfile reads and writes bar chart files and renders charts to
// SVG and PNG.
package barfile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// fileChart is the on-disk representation of a chart, shared by the JSON,
// TOML and YAML formats.
type fileChart struct {
	Title               string       `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Width               int          `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height              int          `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Horizontal          bool         `json:"horizontal,omitempty" toml:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Logarithmic         bool         `json:"logarithmic,omitempty" toml:"logarithmic,omitempty" yaml:"logarithmic,omitempty"`
	Zero                *float64     `json:"zero,omitempty" toml:"zero,omitempty" yaml:"zero,omitempty"`
	Range               []float64    `json:"range,omitempty" toml:"range,omitempty" yaml:"range,omitempty"`
	XLabels             []string     `json:"x_labels,omitempty" toml:"x_labels,omitempty" yaml:"x_labels,omitempty"`
	PrintValues         bool         `json:"print_values,omitempty" toml:"print_values,omitempty" yaml:"print_values,omitempty"`
	PrintValuesPosition string       `json:"print_values_position,omitempty" toml:"print_values_position,omitempty" yaml:"print_values_position,omitempty"`
	ValueFontSize       float64      `json:"value_font_size,omitempty" toml:"value_font_size,omitempty" yaml:"value_font_size,omitempty"`
	Margin              float64      `json:"margin,omitempty" toml:"margin,omitempty" yaml:"margin,omitempty"`
	Locale              string       `json:"locale,omitempty" toml:"locale,omitempty" yaml:"locale,omitempty"`
	Precision           int          `json:"precision,omitempty" toml:"precision,omitempty" yaml:"precision,omitempty"`
	Series              []fileSeries `json:"series" toml:"series" yaml:"series"`
}

// fileSeries holds one series. Absent values are either null entries of
// Values (JSON, YAML) or indexes listed in Missing (any format).
type fileSeries struct {
	Title     string                    `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Values    []*float64                `json:"values" toml:"values" yaml:"values"`
	Missing   []int                     `json:"missing,omitempty" toml:"missing,omitempty" yaml:"missing,omitempty"`
	Secondary bool                      `json:"secondary,omitempty" toml:"secondary,omitempty" yaml:"secondary,omitempty"`
	Rounded   float64                   `json:"rounded,omitempty" toml:"rounded,omitempty" yaml:"rounded,omitempty"`
	Intervals map[string]chart.Interval `json:"intervals,omitempty" toml:"intervals,omitempty" yaml:"intervals,omitempty"`
	Meta      map[string]chart.Metadata `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

// ParseJSON parses a chart from JSON.
func ParseJSON(data []byte) (*chart.Chart, error) {
	var f fileChart
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Format: "json", Err: err}
	}
	c, err := f.toChart()
	if err != nil {
		return nil, &ParseError{Format: "json", Err: err}
	}
	return c, nil
}

// ToJSON converts a chart to JSON. Absent values are written as null.
func ToJSON(c *chart.Chart, pretty bool) ([]byte, error) {
	f := fromChart(c, true)
	if pretty {
		return json.MarshalIndent(f, "", "  ")
	}
	return json.Marshal(f)
}

func (f *fileChart) toChart() (*chart.Chart, error) {
	cfg := chart.Config{
		Width:               f.Width,
		Height:              f.Height,
		Title:               f.Title,
		Horizontal:          f.Horizontal,
		Logarithmic:         f.Logarithmic,
		Zero:                f.Zero,
		XLabels:             f.XLabels,
		PrintValues:         f.PrintValues,
		PrintValuesPosition: f.PrintValuesPosition,
		ValueFontSize:       f.ValueFontSize,
		Margin:              f.Margin,
		Locale:              f.Locale,
		Precision:           f.Precision,
	}
	if len(f.Range) > 0 {
		if len(f.Range) != 2 {
			return nil, fmt.Errorf("range needs 2 values, got %d", len(f.Range))
		}
		cfg.Range = &[2]float64{f.Range[0], f.Range[1]}
	}

	c := chart.New(cfg)
	for i, fs := range f.Series {
		s, err := fs.toSeries()
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		c.Series = append(c.Series, s)
	}
	c.Reindex()
	return c, nil
}

func (fs *fileSeries) toSeries() (chart.Series, error) {
	s := chart.Series{
		Title:     fs.Title,
		Values:    make([]chart.Datum, len(fs.Values)),
		Secondary: fs.Secondary,
		Rounded:   fs.Rounded,
	}
	for i, v := range fs.Values {
		if v != nil {
			s.Values[i].Value = chart.Some(*v)
		}
	}
	for _, i := range fs.Missing {
		if i < 0 || i >= len(s.Values) {
			return s, fmt.Errorf("missing index %d out of range", i)
		}
		s.Values[i].Value = chart.None()
	}
	for k, ci := range fs.Intervals {
		i, err := pointIndex(k, len(s.Values))
		if err != nil {
			return s, fmt.Errorf("interval: %w", err)
		}
		ci := ci
		s.Values[i].CI = &ci
	}
	for k, m := range fs.Meta {
		i, err := pointIndex(k, len(s.Values))
		if err != nil {
			return s, fmt.Errorf("meta: %w", err)
		}
		m := m
		s.Values[i].Meta = &m
	}
	return s, nil
}

func pointIndex(key string, n int) (int, error) {
	i, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("point key %q is not an index", key)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("point index %d out of range", i)
	}
	return i, nil
}

// fromChart builds the file form. With nullable, absent values become nil
// entries; otherwise they are written as 0 and listed in Missing.
func fromChart(c *chart.Chart, nullable bool) *fileChart {
	f := &fileChart{
		Title:               c.Title,
		Width:               c.Width,
		Height:              c.Height,
		Horizontal:          c.Horizontal,
		Logarithmic:         c.Logarithmic,
		Zero:                c.Zero,
		XLabels:             c.XLabels,
		PrintValues:         c.PrintValues,
		PrintValuesPosition: c.PrintValuesPosition,
		ValueFontSize:       c.ValueFontSize,
		Margin:              c.Margin,
		Locale:              c.Locale,
		Precision:           c.Precision,
		Series:              make([]fileSeries, 0, len(c.Series)),
	}
	if c.Range != nil {
		f.Range = []float64{c.Range[0], c.Range[1]}
	}

	for _, s := range c.Series {
		fs := fileSeries{
			Title:     s.Title,
			Values:    make([]*float64, len(s.Values)),
			Secondary: s.Secondary,
			Rounded:   s.Rounded,
		}
		for i, d := range s.Values {
			v, ok := d.Value.Get()
			switch {
			case ok:
				fs.Values[i] = &v
			case !nullable:
				zero := 0.0
				fs.Values[i] = &zero
				fs.Missing = append(fs.Missing, i)
			}
			key := strconv.Itoa(i)
			if d.CI != nil {
				if fs.Intervals == nil {
					fs.Intervals = make(map[string]chart.Interval)
				}
				fs.Intervals[key] = *d.CI
			}
			if d.Meta != nil {
				if fs.Meta == nil {
					fs.Meta = make(map[string]chart.Metadata)
				}
				fs.Meta[key] = *d.Meta
			}
		}
		sort.Ints(fs.Missing)
		f.Series = append(f.Series, fs)
	}
	return f
}
