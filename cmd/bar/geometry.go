package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ha1tch/bar-toolkit/pkg/bar"
	"github.com/ha1tch/bar-toolkit/pkg/barfile"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// barRow is one emitted bar with its anchors, in plot area coordinates.
type barRow struct {
	Series    string     `json:"series"`
	Index     int        `json:"index"`
	Secondary bool       `json:"secondary,omitempty"`
	State     string     `json:"state"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Tooltip   *bar.Point `json:"tooltip,omitempty"`
	Label     *bar.Point `json:"label,omitempty"`
	Text      string     `json:"text,omitempty"`
}

// collector is a Surface that records rows instead of drawing.
type collector struct {
	rows      []barRow
	bars      []bar.Geometry // drawn bars only
	series    *chart.Series
	secondary bool
}

func (c *collector) BeginSeries(s *chart.Series, secondary bool) {
	c.series, c.secondary = s, secondary
}

func (c *collector) EndSeries() {}

func (c *collector) Rect(g bar.Geometry, _ *chart.Metadata) {
	if g.State == bar.StateBar {
		c.bars = append(c.bars, g)
	}
	c.rows = append(c.rows, barRow{
		Series:    c.series.Title,
		Index:     c.series.Index,
		Secondary: c.secondary,
		State:     g.State.String(),
		X:         g.X,
		Y:         g.Y,
		Width:     g.Width,
		Height:    g.Height,
	})
}

func (c *collector) last() *barRow {
	return &c.rows[len(c.rows)-1]
}

func (c *collector) Tooltip(t bar.Tooltip) {
	at := t.At
	c.last().Tooltip = &at
	c.last().Text = t.Value
}

func (c *collector) StaticValue(at bar.Point, _ string, _ *chart.Metadata, _ string) {
	c.last().Label = &at
}

func (c *collector) ConfidenceInterval(bar.IntervalMark, *chart.Metadata) {}

func (a *app) geometryCmd() *cobra.Command {
	var (
		o      overrides
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "geometry <input>",
		Short: "Print the computed bar geometry of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(args[0])
			if err != nil {
				return err
			}
			if err := o.apply(cmd.Flags(), c); err != nil {
				return err
			}
			p, err := barfile.NewPlan(c, a.log)
			if err != nil {
				return err
			}
			col := &collector{}
			p.Run(col, nil)
			for i := range col.bars {
				for j := i + 1; j < len(col.bars); j++ {
					if bar.Overlaps(col.bars[i], col.bars[j]) {
						a.log.Warn("bars overlap", "first", i, "second", j)
					}
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(col.rows)
			}
			if err := writeTable(cmd.OutOrStdout(), col.rows); err != nil {
				return err
			}
			minX, minY, maxX, maxY := bar.Bounds(col.bars)
			fmt.Fprintf(cmd.OutOrStdout(), "Extent: %.2f,%.2f - %.2f,%.2f in %.0fx%.0f\n",
				minX, minY, maxX, maxY, p.Area.Width, p.Area.Height)
			return nil
		},
	}
	o.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func writeTable(w io.Writer, rows []barRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERIES\tSTATE\tX\tY\tWIDTH\tHEIGHT\tTOOLTIP\tTEXT")
	for _, r := range rows {
		tip := "-"
		if r.Tooltip != nil {
			tip = fmt.Sprintf("%.2f,%.2f", r.Tooltip.X, r.Tooltip.Y)
		}
		fmt.Fprintf(tw, "%d %s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			r.Index, r.Series, r.State, r.X, r.Y, r.Width, r.Height, tip, r.Text)
	}
	return tw.Flush()
}
