// Package config loads MyJournal settings from a YAML file with
// MYJOURNAL_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all MyJournal configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Pad    PadConfig    `yaml:"pad"`
	Mirror MirrorConfig `yaml:"mirror"`

	// SeedDemo loads the demo entries into an empty journal.
	SeedDemo bool `yaml:"seed_demo"`

	Logging LoggingConfig `yaml:"logging"`
}

type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// PadConfig holds the handwriting pad defaults.
type PadConfig struct {
	Color string    `yaml:"color"` // "#rrggbb" or a palette name
	Width float32   `yaml:"width"`
	Sizes []float32 `yaml:"sizes"` // slider range: [min, max]
}

// MirrorConfig configures the read-only LAN mirror of the pad.
type MirrorConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
	MDNS    bool `yaml:"mdns"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Journal",
			Width:  1024,
			Height: 768,
		},
		Pad: PadConfig{
			Color: "#000000",
			Width: 2,
			Sizes: []float32{1, 50},
		},
		Mirror: MirrorConfig{
			Enabled: false,
			Port:    8888,
			MDNS:    true,
		},
		SeedDemo: true,
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks ranges that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Pad.Width <= 0 {
		return fmt.Errorf("pad.width must be positive, got %v", c.Pad.Width)
	}
	if len(c.Pad.Sizes) != 2 || c.Pad.Sizes[0] <= 0 || c.Pad.Sizes[0] >= c.Pad.Sizes[1] {
		return fmt.Errorf("pad.sizes must be [min, max] with 0 < min < max, got %v", c.Pad.Sizes)
	}
	if c.Mirror.Port <= 0 || c.Mirror.Port > 65535 {
		return fmt.Errorf("mirror.port out of range: %d", c.Mirror.Port)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MYJOURNAL_PAD_COLOR"); v != "" {
		c.Pad.Color = v
	}
	if v := os.Getenv("MYJOURNAL_MIRROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Mirror.Enabled = b
		}
	}
	if v := os.Getenv("MYJOURNAL_MIRROR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Mirror.Port = p
		}
	}
	if v := os.Getenv("MYJOURNAL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// DefaultPath returns the per-user config location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "myjournal.yaml"
	}
	return filepath.Join(dir, "myjournal", "config.yaml")
}
