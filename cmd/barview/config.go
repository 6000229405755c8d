package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// Config holds viewer preferences.
type Config struct {
	PrintValues bool   `toml:"print_values"`
	Position    string `toml:"position"`  // "top", "bottom" or "middle"
	FileType    string `toml:"file_type"` // export format: "svg" or "png"
	Horizontal  bool   `toml:"horizontal"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Position: chart.PositionMiddle,
		FileType: "svg",
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".barview.toml"
	}
	return filepath.Join(home, ".barview.toml")
}

// LoadConfig loads configuration from a TOML file. found is false when
// there is no readable file; the defaults are returned then.
func LoadConfig(path string) (cfg Config, found bool) {
	cfg = DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), false
	}
	switch cfg.Position {
	case chart.PositionTop, chart.PositionBottom, chart.PositionMiddle:
	default:
		cfg.Position = chart.PositionMiddle
	}
	if cfg.FileType != "png" {
		cfg.FileType = "svg"
	}
	return cfg, true
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte("# barview configuration\n"), data...), 0644)
}
