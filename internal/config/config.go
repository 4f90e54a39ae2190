// Package config loads the optional YAML configuration file.
//
// All settings have working defaults so the tool runs with no config file at
// all; CLI flags override whatever the file provides. Environment variables
// inside the file are expanded before parsing, so secrets like the OMDb API
// key can stay out of the file itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Cinema CinemaConfig `yaml:"cinema"`
	OMDb   OMDbConfig   `yaml:"omdb"`
	Output OutputConfig `yaml:"output"`
}

// CinemaConfig identifies the cinema being scraped
type CinemaConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// OMDbConfig holds ratings API settings
type OMDbConfig struct {
	APIKey           string `yaml:"api_key"`
	CachePath        string `yaml:"cache_path"`
	CacheTTLDays     int    `yaml:"cache_ttl_days"`
	RateLimitDelayMs int    `yaml:"rate_limit_delay_ms"`
	MaxAttempts      int    `yaml:"max_attempts"`
}

// OutputConfig holds output file settings
type OutputConfig struct {
	JSON string `yaml:"json"`
	ICal string `yaml:"ical"`
	HTML string `yaml:"html"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Cinema: CinemaConfig{
			URL:  "https://sheffield.thelight.co.uk/cinema/guide",
			Name: "The Light Cinema Sheffield",
		},
		OMDb: OMDbConfig{
			CacheTTLDays:     7,
			RateLimitDelayMs: 1000,
			MaxAttempts:      3,
		},
		Output: OutputConfig{
			JSON: "cinema-times.json",
		},
	}
}

// Load reads and parses a configuration file, filling in defaults for
// anything the file omits
func Load(path string) (*Config, error) {
	// Expand ~ to home directory if present
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Cinema.URL == "" {
		return nil, fmt.Errorf("cinema url is required")
	}
	if cfg.Cinema.Name == "" {
		return nil, fmt.Errorf("cinema name is required")
	}
	if cfg.Output.JSON == "" {
		return nil, fmt.Errorf("output json path is required")
	}
	if cfg.OMDb.CacheTTLDays <= 0 {
		cfg.OMDb.CacheTTLDays = 7
	}
	if cfg.OMDb.MaxAttempts <= 0 {
		cfg.OMDb.MaxAttempts = 3
	}

	return cfg, nil
}
