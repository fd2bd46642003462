// Package config provides configuration file parsing for basketlift.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is returned when thresholds are rejected before
// computation starts.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Thresholds holds the mining thresholds and basket-size window.
//
// Defaults: MinSupport 0.05, MinConfidence 0.3, MinLift 1.0,
// MinBasketSize 2, MaxBasketSize 0 (unbounded), TopN 0 (no limit).
// Support and confidence thresholds are inclusive (>=); the lift threshold
// is strict (>), so a pair at exact statistical independence (lift 1.0)
// does not pass the default.
type Thresholds struct {
	MinSupport    float64 `yaml:"min_support"`
	MinConfidence float64 `yaml:"min_confidence"`
	MinLift       float64 `yaml:"min_lift"`
	MinBasketSize int     `yaml:"min_basket_size"`
	MaxBasketSize int     `yaml:"max_basket_size"`
	TopN          int     `yaml:"top_n"`
}

// Default returns the documented default thresholds.
func Default() Thresholds {
	return Thresholds{
		MinSupport:    0.05,
		MinConfidence: 0.3,
		MinLift:       1.0,
		MinBasketSize: 2,
		MaxBasketSize: 0,
		TopN:          0,
	}
}

// Validate rejects threshold combinations the engine cannot compute with.
// All errors wrap ErrInvalidConfiguration.
func (t Thresholds) Validate() error {
	if t.MinSupport < 0 || t.MinSupport > 1 {
		return fmt.Errorf("%w: min_support %v outside [0,1]", ErrInvalidConfiguration, t.MinSupport)
	}
	if t.MinConfidence < 0 || t.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence %v outside [0,1]", ErrInvalidConfiguration, t.MinConfidence)
	}
	if t.MinLift < 0 {
		return fmt.Errorf("%w: min_lift %v is negative", ErrInvalidConfiguration, t.MinLift)
	}
	if t.MinBasketSize < 0 || t.MaxBasketSize < 0 {
		return fmt.Errorf("%w: basket sizes must be non-negative", ErrInvalidConfiguration)
	}
	if t.MaxBasketSize > 0 && t.MinBasketSize > t.MaxBasketSize {
		return fmt.Errorf("%w: min_basket_size %d > max_basket_size %d",
			ErrInvalidConfiguration, t.MinBasketSize, t.MaxBasketSize)
	}
	if t.TopN < 0 {
		return fmt.Errorf("%w: top_n %d is negative", ErrInvalidConfiguration, t.TopN)
	}
	return nil
}

// Dir returns the basketlift config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/basketlift if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "basketlift"), nil
}

// Load reads thresholds from the YAML file at path, layered over the
// defaults: keys absent from the file keep their default value. A missing
// file returns the defaults without an error. The result is validated.
func Load(path string) (Thresholds, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return t, err
	}

	return t, nil
}

// LoadDefault loads thresholds from thresholds.yaml in the config
// directory, falling back to defaults when the file does not exist.
func LoadDefault() (Thresholds, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), err
	}
	return Load(filepath.Join(dir, "thresholds.yaml"))
}
