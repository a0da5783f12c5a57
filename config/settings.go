package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var (
	ErrInvalidProcesses = errors.New("config: the number of processes must be positive")
	ErrInvalidFormat    = errors.New("config: unknown report format")
)

// Settings of the lacheck command.
//
// Values are read from the environment and can be overridden by flags and arguments.
type Settings struct {
	ConfigDir    string `env:"LACHECK_CONFIG_DIR"`
	OutputDir    string `env:"LACHECK_OUTPUT_DIR"`
	NumProcesses int    `env:"LACHECK_PROCESSES" envDefault:"3"`
	// One of text, json or yaml
	Format string `env:"LACHECK_FORMAT" envDefault:"text"`
	// Address of the validation service. Empty runs a local check.
	Listen string `env:"LACHECK_LISTEN"`
	// Warn when proposal traces have different lengths
	WarnDivergence bool `env:"LACHECK_WARN_DIVERGENCE" envDefault:"true"`
}

// ParseEnv loads settings from environment variables.
func ParseEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("config: parse env: %w", err)
	}
	return s, nil
}

// Validate the settings of a local check
func (s Settings) Validate() error {
	if s.NumProcesses < 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProcesses, s.NumProcesses)
	}
	switch s.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s.Format)
	}
	return nil
}
