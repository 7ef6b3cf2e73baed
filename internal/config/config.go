// Package config loads run settings from YAML, falling back to the defaults
// of the reference workflow (orto1.tif, orto2.tif, intersection_obchaja_2.geojson).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"orthoverlap/internal/geom"
)

type Config struct {
	Inputs struct {
		// First and Second are the two raster paths
		First  string `yaml:"first"`
		Second string `yaml:"second"`
	} `yaml:"inputs"`

	Output struct {
		// Path of the GeoJSON document written per run
		Path string `yaml:"path"`

		// FeatureName is the name property of the intersection feature
		FeatureName string `yaml:"featureName"`

		// Indent is the number of spaces per JSON level; 0 writes compact JSON
		Indent int `yaml:"indent"`
	} `yaml:"output"`

	Processing struct {
		// Parallel scans both masks concurrently
		Parallel bool `yaml:"parallel"`
	} `yaml:"processing"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Inputs.First = "orto1.tif"
	cfg.Inputs.Second = "orto2.tif"
	cfg.Output.Path = "intersection_obchaja_2.geojson"
	cfg.Output.FeatureName = geom.DefaultFeatureName
	cfg.Output.Indent = 4
	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Inputs.First == "" || c.Inputs.Second == "":
		return errors.New("config: both input rasters are required")
	case c.Output.Path == "":
		return errors.New("config: output path is required")
	case c.Output.Indent < 0:
		return fmt.Errorf("config: negative indent %d", c.Output.Indent)
	}
	return nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
