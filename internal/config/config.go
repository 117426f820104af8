package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete processing configuration
type Config struct {
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// ProcessingConfig contains the defaults applied when a parameter set
// omits a value
type ProcessingConfig struct {
	DefaultSamplingRate float64 `yaml:"default_sampling_rate" envconfig:"DEFAULT_SAMPLING_RATE" default:"1000"`
	FilterOrder         int     `yaml:"filter_order" envconfig:"FILTER_ORDER" default:"4"`
	NotchFrequency      float64 `yaml:"notch_frequency" envconfig:"NOTCH_FREQUENCY" default:"50"`
	PowerFrequency      float64 `yaml:"power_frequency" envconfig:"POWER_FREQUENCY" default:"60"`
	QualityFactor       float64 `yaml:"quality_factor" envconfig:"QUALITY_FACTOR" default:"30"`
	MaxHarmonic         int     `yaml:"max_harmonic" envconfig:"MAX_HARMONIC" default:"5"`
	SmartFillWindow     int     `yaml:"smart_fill_window" envconfig:"SMART_FILL_WINDOW" default:"10"`
	SmartFillStdFloor   float64 `yaml:"smart_fill_std_floor" envconfig:"SMART_FILL_STD_FLOOR" default:"0.01"`
	FirstNSeconds       float64 `yaml:"first_n_seconds" envconfig:"FIRST_N_SECONDS" default:"1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// Load loads configuration from the optional YAML file at path and the
// environment. Environment variables override file values, which override
// the struct-tag defaults. An empty path skips the file layer; a missing
// file at a non-empty path is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	// Struct-tag defaults first
	if err := envconfig.Process("SIGPROC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		// Re-apply the environment so it keeps the highest precedence
		if err := envconfig.Process("SIGPROC", &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting the
// environment or any file.
func Default() *Config {
	return &Config{
		Processing: ProcessingConfig{
			DefaultSamplingRate: 1000,
			FilterOrder:         4,
			NotchFrequency:      50,
			PowerFrequency:      60,
			QualityFactor:       30,
			MaxHarmonic:         5,
			SmartFillWindow:     10,
			SmartFillStdFloor:   0.01,
			FirstNSeconds:       1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for values the engines cannot work
// with.
func (c *Config) Validate() error {
	p := c.Processing
	if p.DefaultSamplingRate <= 0 {
		return fmt.Errorf("default sampling rate must be positive, got %g", p.DefaultSamplingRate)
	}
	if p.FilterOrder <= 0 || p.FilterOrder%2 != 0 {
		return fmt.Errorf("filter order must be a positive even number, got %d", p.FilterOrder)
	}
	if p.QualityFactor <= 0 {
		return fmt.Errorf("quality factor must be positive, got %g", p.QualityFactor)
	}
	if p.MaxHarmonic < 1 {
		return fmt.Errorf("max harmonic must be at least 1, got %d", p.MaxHarmonic)
	}
	if p.SmartFillWindow < 1 {
		return fmt.Errorf("smart fill window must be at least 1, got %d", p.SmartFillWindow)
	}
	if p.SmartFillStdFloor <= 0 {
		return fmt.Errorf("smart fill std floor must be positive, got %g", p.SmartFillStdFloor)
	}
	return nil
}
