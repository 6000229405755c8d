package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ha1tch/bar-toolkit/pkg/barfile"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// overrides are the chart options settable from the command line.
type overrides struct {
	horizontal  bool
	logarithmic bool
	printValues bool
	position    string
	width       int
	height      int
	title       string
}

func (o *overrides) register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.horizontal, "horizontal", false, "Lay bars out horizontally")
	fs.BoolVar(&o.logarithmic, "log", false, "Use a logarithmic value axis")
	fs.BoolVar(&o.printValues, "print-values", false, "Print values on the bars")
	fs.StringVar(&o.position, "position", chart.PositionMiddle, "Printed value position: top, bottom, middle")
	fs.IntVar(&o.width, "width", 0, "Canvas width (default from chart)")
	fs.IntVar(&o.height, "height", 0, "Canvas height (default from chart)")
	fs.StringVar(&o.title, "title", "", "Chart title")
}

// apply sets the options whose flags were given.
func (o *overrides) apply(fs *pflag.FlagSet, c *chart.Chart) error {
	if fs.Changed("horizontal") {
		c.Horizontal = o.horizontal
	}
	if fs.Changed("log") {
		c.Logarithmic = o.logarithmic
	}
	if fs.Changed("print-values") {
		c.PrintValues = o.printValues
	}
	if fs.Changed("position") {
		switch o.position {
		case chart.PositionTop, chart.PositionBottom, chart.PositionMiddle:
			c.PrintValuesPosition = o.position
		default:
			return fmt.Errorf("invalid position %q (must be top, bottom or middle)", o.position)
		}
	}
	if fs.Changed("width") {
		c.Width = o.width
	}
	if fs.Changed("height") {
		c.Height = o.height
	}
	if fs.Changed("title") {
		c.Title = o.title
	}
	return nil
}

func (a *app) load(path string) (*chart.Chart, error) {
	c, err := barfile.Load(path, a.log)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

func (a *app) renderCmd() *cobra.Command {
	var (
		o      overrides
		output string
	)
	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a chart to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			c, err := a.load(input)
			if err != nil {
				return err
			}
			if err := o.apply(cmd.Flags(), c); err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
			}

			switch strings.ToLower(filepath.Ext(output)) {
			case ".svg":
				svg, err := barfile.GenerateSVG(c, barfile.SVGOptions{Logger: a.log})
				if err != nil {
					return err
				}
				err = os.WriteFile(output, []byte(svg), 0644)
				if err != nil {
					return err
				}
			case ".png":
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				if err := barfile.RenderPNG(c, f, barfile.PNGOptions{Logger: a.log}); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output format: %s", filepath.Ext(output))
			}

			a.log.Info("written", "path", output)
			return nil
		},
	}
	o.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, .svg or .png (default: input with .svg)")
	return cmd
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Show chart information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if c.Title != "" {
				fmt.Fprintf(w, "Title:       %s\n", c.Title)
			}
			fmt.Fprintf(w, "Size:        %dx%d\n", c.Width, c.Height)
			orientation := "vertical"
			if c.Horizontal {
				orientation = "horizontal"
			}
			axis := "linear"
			if c.Logarithmic {
				axis = "logarithmic"
			}
			fmt.Fprintf(w, "Orientation: %s\n", orientation)
			fmt.Fprintf(w, "Value axis:  %s\n", axis)
			fmt.Fprintf(w, "Categories:  %d\n", c.Len())
			fmt.Fprintf(w, "Series:      %d (%d secondary)\n", c.Order(), len(c.Secondary()))
			if min, max := c.ValueRange(false); min.Present() {
				fmt.Fprintf(w, "Range:       %s .. %s\n", min, max)
			}
			fmt.Fprintln(w)
			for _, s := range c.Series {
				missing := 0
				for _, d := range s.Values {
					if !d.Value.Present() {
						missing++
					}
				}
				tag := ""
				if s.Secondary {
					tag = " [secondary]"
				}
				fmt.Fprintf(w, "  %d %-20s %d values, %d missing%s\n", s.Index, s.Title, len(s.Values), missing, tag)
			}
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a chart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			c, err := a.load(input)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid chart with %d series, %d categories\n",
				input, c.Order(), c.Len())
			return nil
		},
	}
}

func (a *app) convertCmd() *cobra.Command {
	var (
		output string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert between chart formats (json, toml, yaml, xlsx)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			c, err := a.load(input)
			if err != nil {
				return err
			}

			if output == "" {
				// Default: change extension
				ext := filepath.Ext(input)
				base := strings.TrimSuffix(input, ext)
				if strings.EqualFold(ext, ".json") {
					output = base + ".toml"
				} else {
					output = base + ".json"
				}
			}
			if err := barfile.Save(output, c, pretty); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.log.Info("written", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
