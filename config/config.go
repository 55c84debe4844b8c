// Package config loads the dashboard configuration from YAML and fills in
// defaults for anything the file leaves out.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint"`
	Poll     PollConfig     `yaml:"poll"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EndpointConfig names the telemetry source.
type EndpointConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PollConfig controls the fetch cadence.
type PollConfig struct {
	PeriodSeconds int `yaml:"period_seconds"`
}

// UIConfig contains terminal dashboard settings.
type UIConfig struct {
	Enabled     bool `yaml:"enabled"`
	TargetFPS   int  `yaml:"target_fps"`
	EnableMouse bool `yaml:"enable_mouse"`
}

// LoggingConfig contains log file settings.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.UI.Enabled = true
	cfg.Normalize()
	return cfg
}

func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}

// Normalize fills zero values with usable defaults.
func (c *Config) Normalize() {
	if c.Endpoint.URL == "" {
		c.Endpoint.URL = "http://localhost:3128/net.json"
	}
	if c.Endpoint.TimeoutSeconds <= 0 {
		c.Endpoint.TimeoutSeconds = 4
	}
	if c.Poll.PeriodSeconds <= 0 {
		c.Poll.PeriodSeconds = 5
	}
	if c.UI.TargetFPS <= 0 {
		c.UI.TargetFPS = 30
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Logging.RetentionDays <= 0 {
		c.Logging.RetentionDays = 7
	}
}

// Print displays the configuration
func (c *Config) Print() {
	fmt.Printf("Endpoint: %s (timeout %ds)\n", c.Endpoint.URL, c.Endpoint.TimeoutSeconds)
	fmt.Printf("Poll: every %ds\n", c.Poll.PeriodSeconds)
	uiDesc := "disabled"
	if c.UI.Enabled {
		uiDesc = fmt.Sprintf("enabled (%d fps)", c.UI.TargetFPS)
	}
	fmt.Printf("UI: %s\n", uiDesc)
	if c.Logging.Enabled {
		fmt.Printf("Logging: %s (keep %d days)\n", c.Logging.Dir, c.Logging.RetentionDays)
	}
}
