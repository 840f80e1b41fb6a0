// Package config loads the fellmark YAML configuration. A missing file is not
// an error; defaults apply to every zero field so a partial file works too.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type CutConfig struct {
	// TargetDistance is the desired axial distance from the trunk's lower
	// end to the cut, in world units.
	TargetDistance float32 `yaml:"target_distance"`
	// WindowHalfSize is half the side length of the surface search window.
	WindowHalfSize float32 `yaml:"window_half_size"`
}

type ProbeConfig struct {
	// Resolution is the per-axis sample count of the window scan.
	Resolution int `yaml:"resolution"`
}

type MarkerConfig struct {
	// Model is the marker model path. Empty selects the built-in ring mesh.
	Model string  `yaml:"model"`
	Scale float32 `yaml:"scale"`
}

type DiagnosticsConfig struct {
	// Dir receives cross-section snapshot images. Empty disables snapshots.
	Dir string `yaml:"dir"`
}

type Config struct {
	Cut         CutConfig         `yaml:"cut"`
	Probe       ProbeConfig       `yaml:"probe"`
	Marker      MarkerConfig      `yaml:"marker"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

func (c *Config) applyDefaults() {
	if c.Cut.TargetDistance == 0 {
		c.Cut.TargetDistance = 6.0
	}
	if c.Cut.WindowHalfSize == 0 {
		c.Cut.WindowHalfSize = 0.6
	}
	if c.Probe.Resolution == 0 {
		c.Probe.Resolution = 24
	}
	if c.Marker.Scale == 0 {
		c.Marker.Scale = 1.0
	}
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
