// Package config provides configuration loading and validation for the
// visibility doctor.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rabi3laser/visibility-doctor/pkg/pathutil"
)

// Config holds the tunable parameters of a diagnosis run.
type Config struct {
	Currency           string   `yaml:"currency,omitempty"`
	Locale             string   `yaml:"locale,omitempty"`
	MarketRadiusKM     float64  `yaml:"market_radius_km,omitempty"`
	MaxCompetitors     int      `yaml:"max_competitors,omitempty"`
	DataDir            string   `yaml:"data_dir,omitempty"`
	EssentialAmenities []string `yaml:"essential_amenities,omitempty"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Currency:       "EUR",
		Locale:         "en",
		MarketRadiusKM: 2.0,
		MaxCompetitors: 20,
		DataDir:        "data",
		EssentialAmenities: []string{
			"wifi",
			"kitchen",
			"washer",
			"air conditioning",
			"heating",
			"tv",
			"hair dryer",
			"iron",
			"dedicated workspace",
			"pool",
			"free parking",
			"hot tub",
		},
	}
}

// Load reads a YAML configuration file. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	validated, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, fmt.Errorf("validating config path: %w", err)
	}

	data, err := os.ReadFile(validated) //nolint:gosec // Path validated above
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if c.MarketRadiusKM <= 0 {
		return fmt.Errorf("market_radius_km must be positive, got %g", c.MarketRadiusKM)
	}
	if c.MaxCompetitors <= 0 {
		return fmt.Errorf("max_competitors must be positive, got %d", c.MaxCompetitors)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if _, err := pathutil.ValidateDataPath(c.DataDir, ""); err != nil {
		return fmt.Errorf("invalid data_dir: %w", err)
	}
	if len(c.EssentialAmenities) == 0 {
		return fmt.Errorf("essential_amenities must not be empty")
	}
	return nil
}
