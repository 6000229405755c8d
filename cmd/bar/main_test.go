package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/bar-toolkit/pkg/barfile"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

const sampleTOML = `
title = "Sample"
x_labels = ["a", "b", "c", "d"]

[[series]]
title = "one"
values = [1.0, 2.0, 3.0, 4.0]

[[series]]
title = "two"
values = [4.0, 0.0, 2.0, 1.0]
missing = [1]

[[series]]
title = "three"
values = [2.0, 2.0, 2.0, 2.0]
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderSVG(t *testing.T) {
	input := writeSample(t)
	out := filepath.Join(filepath.Dir(input), "out.svg")

	_, stderr, err := run(t, "render", input, "-o", out, "--print-values", "--position", "top")
	require.NoError(t, err)
	assert.Contains(t, stderr, "written")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.Equal(t, 11, strings.Count(svg, "tooltip-trigger"))
	assert.Equal(t, 11, strings.Count(svg, `class="value middle"`))
	assert.Equal(t, 1, strings.Count(svg, `class="rect reactive no-bar"`))
}

func TestRenderDefaultOutput(t *testing.T) {
	input := writeSample(t)
	_, _, err := run(t, "render", input)
	require.NoError(t, err)
	_, err = os.Stat(strings.TrimSuffix(input, ".toml") + ".svg")
	assert.NoError(t, err)
}

func TestRenderPNG(t *testing.T) {
	input := writeSample(t)
	out := filepath.Join(filepath.Dir(input), "out.png")

	_, _, err := run(t, "render", input, "-o", out, "--width", "320", "--height", "200", "--horizontal")
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderErrors(t *testing.T) {
	input := writeSample(t)

	_, _, err := run(t, "render", input, "--position", "left")
	assert.ErrorContains(t, err, "invalid position")

	_, _, err = run(t, "render", input, "-o", "out.gif")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "render", "missing.csv")
	assert.ErrorIs(t, err, barfile.ErrUnknownFormat)
}

func TestInfo(t *testing.T) {
	stdout, _, err := run(t, "info", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Title:       Sample")
	assert.Contains(t, stdout, "Categories:  4")
	assert.Contains(t, stdout, "Series:      3 (0 secondary)")
	assert.Contains(t, stdout, "Range:       1 .. 4")
	assert.Contains(t, stdout, "4 values, 1 missing")
}

func TestValidate(t *testing.T) {
	input := writeSample(t)
	stdout, _, err := run(t, "validate", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "valid chart with 3 series, 4 categories")

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"series": []}`), 0644))
	_, _, err = run(t, "validate", empty)
	assert.ErrorIs(t, err, chart.ErrNoSeries)
}

func TestConvert(t *testing.T) {
	input := writeSample(t)
	out := filepath.Join(filepath.Dir(input), "sample.json")

	_, _, err := run(t, "convert", input, "-o", out, "--pretty")
	require.NoError(t, err)

	c, err := barfile.Load(out, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sample", c.Title)
	require.Len(t, c.Series, 3)
	assert.False(t, c.Series[1].Values[1].Value.Present())
}

func TestGeometry(t *testing.T) {
	input := writeSample(t)

	stdout, _, err := run(t, "geometry", input)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 14)
	assert.True(t, strings.HasPrefix(lines[0], "SERIES"))
	assert.True(t, strings.HasPrefix(lines[13], "Extent:"))

	_, stderr, err := run(t, "geometry", input, "--json", "--verbose")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "bars overlap")

	stdout, _, err = run(t, "geometry", input, "--json")
	require.NoError(t, err)
	var rows []barRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 12)
	for _, r := range rows {
		assert.LessOrEqual(t, r.Width, 75.0)
		if r.State == "no-bar" {
			assert.Nil(t, r.Tooltip)
		} else {
			assert.NotNil(t, r.Tooltip)
		}
	}
}
