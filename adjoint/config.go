package adjoint

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrPeriodRange reports a configuration whose period band is inverted.
var ErrPeriodRange = errors.New("adjoint: min_period exceeds max_period")

// Config carries the measurement parameters shared by all channels of one
// run. The period band is required; everything else is engine-specific and
// passed through untouched.
type Config struct {
	MinPeriod float64        `yaml:"min_period"`
	MaxPeriod float64        `yaml:"max_period"`
	Params    map[string]any `yaml:",inline"`
}

// Validate checks the period band.
func (c *Config) Validate() error {
	if c.MinPeriod > c.MaxPeriod {
		return fmt.Errorf("%w: [%g, %g]", ErrPeriodRange, c.MinPeriod, c.MaxPeriod)
	}
	return nil
}

// LoadConfig parses a YAML measurement configuration file and validates it.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("adjoint: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("adjoint: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w in %s", err, path)
	}
	return &cfg, nil
}
