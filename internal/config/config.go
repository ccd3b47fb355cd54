// Package config provides configuration management for pixelnet.
//
// Values are layered with koanf. Precedence (highest to lowest):
// flags > PIXELNET_* environment variables > YAML config file > defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/born-ml/pixelnet/internal/nn"
)

// Default values.
const (
	DefaultRows             = 28
	DefaultCols             = 28
	DefaultHiddenUnits      = 128
	DefaultClasses          = 10
	DefaultHiddenActivation = nn.ActivationReLU
	DefaultOutputActivation = nn.ActivationSigmoid
	DefaultLogLevel         = "info"
	DefaultSeed             = 0
	DefaultWorkers          = 0
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full pixelnet configuration.
type Config struct {
	Model    Model  `koanf:"model"`
	LogLevel string `koanf:"log_level"`
	// Seed drives weight initialization; 0 picks a time-based seed.
	Seed int64 `koanf:"seed"`
	// Workers bounds the goroutines used by CPU kernels; 0 means one per CPU.
	Workers int `koanf:"workers"`
}

// Model describes the classifier pipeline.
type Model struct {
	Rows             int     `koanf:"rows"`
	Cols             int     `koanf:"cols"`
	Scale            float64 `koanf:"scale"`
	HiddenUnits      int     `koanf:"hidden_units"`
	HiddenActivation string  `koanf:"hidden_activation"`
	Classes          int     `koanf:"classes"`
	OutputActivation string  `koanf:"output_activation"`
}

// Default returns a Config describing the 28x28 digit classifier.
func Default() *Config {
	return &Config{
		Model: Model{
			Rows:             DefaultRows,
			Cols:             DefaultCols,
			Scale:            nn.DefaultPixelScale,
			HiddenUnits:      DefaultHiddenUnits,
			HiddenActivation: DefaultHiddenActivation,
			Classes:          DefaultClasses,
			OutputActivation: DefaultOutputActivation,
		},
		LogLevel: DefaultLogLevel,
		Seed:     DefaultSeed,
		Workers:  DefaultWorkers,
	}
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Validate checks the model description.
func (m Model) Validate() error {
	switch {
	case m.Rows <= 0 || m.Cols <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, m.Rows, m.Cols)
	case m.HiddenUnits <= 0:
		return fmt.Errorf("%w: hidden_units %d must be positive", ErrInvalidConfig, m.HiddenUnits)
	case m.Classes <= 0:
		return fmt.Errorf("%w: classes %d must be positive", ErrInvalidConfig, m.Classes)
	case m.Scale == 0 || math.IsNaN(m.Scale) || math.IsInf(m.Scale, 0):
		return fmt.Errorf("%w: scale %v must be finite and non-zero", ErrInvalidConfig, m.Scale)
	}
	for _, act := range []string{m.HiddenActivation, m.OutputActivation} {
		if err := nn.ValidateActivation(act); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, s)
	}
	return level, nil
}
