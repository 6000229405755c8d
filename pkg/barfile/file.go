package barfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// Format is a chart file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the format of a path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads a chart file of any supported format.
func Load(path string, log *slog.Logger) (*chart.Chart, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return ParseXLSX(path, XLSXOptions{Logger: log})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c *chart.Chart
	switch format {
	case FormatJSON:
		c, err = ParseJSON(data)
	case FormatTOML:
		c, err = ParseTOML(data)
	case FormatYAML:
		c, err = ParseYAML(data)
	}
	if pe, ok := err.(*ParseError); ok {
		pe.Path = path
	}
	return c, err
}

// Save writes a chart in the format given by the path extension.
func Save(path string, c *chart.Chart, pretty bool) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatXLSX:
		return WriteXLSX(c, path)
	case FormatJSON:
		data, err = ToJSON(c, pretty)
	case FormatTOML:
		data, err = ToTOML(c)
	case FormatYAML:
		data, err = ToYAML(c)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return os.WriteFile(path, data, 0644)
}
