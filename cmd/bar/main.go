// Command bar is a CLI tool for working with grouped bar charts.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const long = `bar - grouped bar chart toolkit

Chart files are read by extension: .json, .toml, .yaml/.yml, .xlsx.

Examples:
  bar render sales.toml -o sales.svg
  bar render sales.xlsx -o sales.png --horizontal --print-values
  bar convert sales.xlsx -o sales.json --pretty
  bar geometry sales.json
  bar info sales.yaml`

// app holds the state shared by all commands.
type app struct {
	verbose bool
	log     *slog.Logger
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:           "bar",
		Short:         "Render and inspect grouped bar charts",
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output")

	root.AddCommand(
		a.renderCmd(),
		a.infoCmd(),
		a.validateCmd(),
		a.convertCmd(),
		a.geometryCmd(),
	)
	return root
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("command failed", "err", err)
		os.Exit(1)
	}
}
