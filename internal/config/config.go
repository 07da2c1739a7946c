package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the combat simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level"`

	// Simulation loop
	TickMs          int     `yaml:"tick_ms"`           // simulation step, milliseconds
	DurationSeconds float64 `yaml:"duration_seconds"`  // total simulated fight time
	SwingEverySteps int     `yaml:"swing_every_steps"` // attack cadence in steps

	// Effect engine
	MaxEffects  int    `yaml:"max_effects"`  // per-entity instance capacity
	EffectsFile string `yaml:"effects_file"` // optional YAML definition extensions

	// Persistence (optional; empty host disables it)
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether persistence is configured at all.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:        "info",
		TickMs:          100,
		DurationSeconds: 30,
		SwingEverySteps: 10,
		MaxEffects:      32,
	}
}

// LoadSimulator reads YAML config from path, merged over defaults.
// A missing file is not an error: defaults apply.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
