package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReportConfig controls the page geometry and content of the one-page report.
type ReportConfig struct {
	PageWidth       float64           `yaml:"page_width"`
	PageHeight      float64           `yaml:"page_height"`
	MarginFactor    float64           `yaml:"margin_factor"`
	HeaderFontSize  float64           `yaml:"header_font_size"`
	TopListFontSize float64           `yaml:"top_list_font_size"`
	TopListRows     int               `yaml:"top_list_rows"`
	TopKCapacity    int               `yaml:"topk_capacity"`
	Filename        string            `yaml:"filename"`
	Diagnostics     bool              `yaml:"diagnostics"`
	PortAliases     map[uint16]uint16 `yaml:"port_aliases"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Report ReportConfig `yaml:"report"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the configuration used when no file overrides it: a
// US-letter page at 72 units per inch with the standard report layout.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			PageWidth:       611.0,
			PageHeight:      792.0,
			MarginFactor:    0.05,
			HeaderFontSize:  8.0,
			TopListFontSize: 8.0,
			TopListRows:     3,
			TopKCapacity:    64,
			Filename:        "report.png",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads the configuration from a YAML file, applied on top of the
// defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return cfg, nil
}
