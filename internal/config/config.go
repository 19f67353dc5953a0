// Package config loads xes2arff settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete xes2arff configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`
	Seed    SeedConfig    `mapstructure:"seed" yaml:"seed"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// ConvertConfig holds defaults for the convert command
type ConvertConfig struct {
	Results     string `mapstructure:"results" yaml:"results"`
	Classifier  string `mapstructure:"classifier" yaml:"classifier"`
	Strict      bool   `mapstructure:"strict" yaml:"strict"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// SeedConfig holds synthetic log generation settings
type SeedConfig struct {
	Traces         int           `mapstructure:"traces" yaml:"traces"`
	EventsPerTrace int           `mapstructure:"events_per_trace" yaml:"events_per_trace"`
	Resources      int           `mapstructure:"resources" yaml:"resources"`
	MissingRate    float64       `mapstructure:"missing_rate" yaml:"missing_rate"`
	Seed           int64         `mapstructure:"seed" yaml:"seed"`
	Start          string        `mapstructure:"start" yaml:"start"`
	MaxGap         time.Duration `mapstructure:"max_gap" yaml:"max_gap"`
	Activities     []string      `mapstructure:"activities" yaml:"activities"`
}

// StartTime parses Start as RFC 3339.
func (s SeedConfig) StartTime() (time.Time, error) {
	return time.Parse(time.RFC3339, s.Start)
}

// EnvPrefix is the prefix of environment overrides, e.g. XES2ARFF_LOG_LEVEL.
const EnvPrefix = "XES2ARFF"

// Load reads configuration with cascade: env > config file > defaults.
// Without an explicit path, ./xes2arff.yaml and ~/.xes2arff/xes2arff.yaml are tried.
// Command-line flags are applied on top by the caller.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("xes2arff")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".xes2arff"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("convert.results", "")
	v.SetDefault("convert.classifier", "")
	v.SetDefault("convert.strict", false)
	v.SetDefault("convert.metrics_file", "")

	v.SetDefault("seed.traces", 20)
	v.SetDefault("seed.events_per_trace", 6)
	v.SetDefault("seed.resources", 4)
	v.SetDefault("seed.missing_rate", 0.05)
	v.SetDefault("seed.seed", 1)
	v.SetDefault("seed.start", "2024-01-01T08:00:00Z")
	v.SetDefault("seed.max_gap", 2*time.Hour)
	v.SetDefault("seed.activities", []string{
		"register request", "examine casually", "examine thoroughly",
		"check ticket", "decide", "reinitiate request", "pay compensation", "reject request",
	})
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Seed.Traces < 1 {
		return fmt.Errorf("seed.traces must be positive, got %d", c.Seed.Traces)
	}
	if c.Seed.EventsPerTrace < 1 {
		return fmt.Errorf("seed.events_per_trace must be positive, got %d", c.Seed.EventsPerTrace)
	}
	if c.Seed.Resources < 1 {
		return fmt.Errorf("seed.resources must be positive, got %d", c.Seed.Resources)
	}
	if c.Seed.MissingRate < 0 || c.Seed.MissingRate > 1 {
		return fmt.Errorf("seed.missing_rate must be within [0,1], got %g", c.Seed.MissingRate)
	}
	if c.Seed.MaxGap <= 0 {
		return fmt.Errorf("seed.max_gap must be positive, got %v", c.Seed.MaxGap)
	}
	if len(c.Seed.Activities) == 0 {
		return errors.New("seed.activities must not be empty")
	}
	if _, err := c.Seed.StartTime(); err != nil {
		return fmt.Errorf("seed.start: %w", err)
	}

	return nil
}
