package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-tilemap/internal/engine/camera"
	"github.com/Faultbox/midgard-tilemap/internal/tilemap"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks enumerated settings and sizes.
func (c *Config) Validate() error {
	if _, err := tilemap.ParseSampleMode(c.Render.Sampling); err != nil {
		return fmt.Errorf("render.sampling: %w", err)
	}
	if _, err := camera.ParsePixelScrollPolicy(c.Input.PixelScroll); err != nil {
		return fmt.Errorf("input.pixel_scroll: %w", err)
	}
	if c.Map.IndexWidth <= 0 || c.Map.IndexHeight <= 0 {
		return fmt.Errorf("map index size %dx%d must be positive", c.Map.IndexWidth, c.Map.IndexHeight)
	}
	if c.Map.Atlas == "" {
		return fmt.Errorf("map.atlas is empty")
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardTilemap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardTilemap")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-tilemap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-tilemap")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
