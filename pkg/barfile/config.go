package barfile

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// ParseTOML parses a chart from TOML. TOML has no null, so absent values
// are listed by index in a series' missing array.
func ParseTOML(data []byte) (*chart.Chart, error) {
	var f fileChart
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Format: "toml", Err: err}
	}
	c, err := f.toChart()
	if err != nil {
		return nil, &ParseError{Format: "toml", Err: err}
	}
	return c, nil
}

// ToTOML converts a chart to TOML.
func ToTOML(c *chart.Chart) ([]byte, error) {
	return toml.Marshal(fromChart(c, false))
}

// ParseYAML parses a chart from YAML. Absent values may be null or listed
// in missing.
func ParseYAML(data []byte) (*chart.Chart, error) {
	var f fileChart
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Format: "yaml", Err: err}
	}
	c, err := f.toChart()
	if err != nil {
		return nil, &ParseError{Format: "yaml", Err: err}
	}
	return c, nil
}

// ToYAML converts a chart to YAML.
func ToYAML(c *chart.Chart) ([]byte, error) {
	return yaml.Marshal(fromChart(c, false))
}
