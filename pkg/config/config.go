// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/skipcut/pkg/adapters/colormatch"
	"github.com/user/skipcut/pkg/adapters/templatematch"
	"github.com/user/skipcut/pkg/orchestrator"
)

// Strategy names selectable in configuration.
const (
	StrategyTemplate = "template"
	StrategyColor    = "color"
)

// Config represents the full configuration for skipcut.
type Config struct {
	// Input/Output
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Sampling
	SampleRate    float64 `yaml:"sample_rate"`
	WorkingWidth  int     `yaml:"working_width"`
	SeekTimeoutMs int     `yaml:"seek_timeout_ms"`

	// Matching
	Strategy             string    `yaml:"strategy"`
	TemplatePath         string    `yaml:"template"`
	CorrelationThreshold float64   `yaml:"correlation_threshold"`
	HSVLower             HSVConfig `yaml:"hsv_lower"`
	HSVUpper             HSVConfig `yaml:"hsv_upper"`
	AreaFraction         float64   `yaml:"area_fraction"`
	CloseKernel          int       `yaml:"close_kernel"`

	// Grouping
	MergeGap float64 `yaml:"merge_gap"`
	Padding  float64 `yaml:"padding"`

	// Media
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// HSVConfig represents one HSV bound.
type HSVConfig struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	V float64 `yaml:"v"`
}

// Defaults returns a Config with default values. The threshold values
// are the observed working set; all are overridable.
func Defaults() Config {
	return Config{
		// Sampling
		SampleRate:    2.0,
		WorkingWidth:  480,
		SeekTimeoutMs: 10000,

		// Matching
		Strategy:             StrategyTemplate,
		CorrelationThreshold: 0.75,
		HSVLower:             HSVConfig{H: 200, S: 0.4, V: 0.2},
		HSVUpper:             HSVConfig{H: 260, S: 1.0, V: 1.0},
		AreaFraction:         0.15,
		CloseKernel:          5,

		// Grouping
		MergeGap: 1.0,
		Padding:  0.25,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToAnalyzerConfig converts Config to orchestrator.Config.
func (c Config) ToAnalyzerConfig() orchestrator.Config {
	return orchestrator.Config{
		SampleRate:    c.SampleRate,
		WorkingWidth:  c.WorkingWidth,
		SeekTimeoutMs: c.SeekTimeoutMs,
		MergeGap:      c.MergeGap,
		Padding:       c.Padding,
	}
}

// ToTemplateOptions converts Config to template matcher options.
func (c Config) ToTemplateOptions() templatematch.Options {
	return templatematch.Options{
		Threshold: c.CorrelationThreshold,
	}
}

// ToColorOptions converts Config to color matcher options.
func (c Config) ToColorOptions() colormatch.Options {
	return colormatch.Options{
		Lower:           colormatch.HSV{H: c.HSVLower.H, S: c.HSVLower.S, V: c.HSVLower.V},
		Upper:           colormatch.HSV{H: c.HSVUpper.H, S: c.HSVUpper.S, V: c.HSVUpper.V},
		MinAreaFraction: c.AreaFraction,
		CloseKernel:     c.CloseKernel,
	}
}
