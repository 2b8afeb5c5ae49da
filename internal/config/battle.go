package config

import (
	"errors"
	"fmt"
	"time"
)

// Timing holds the presentation delays of a turn cycle.
type Timing struct {
	AttackMove     time.Duration `yaml:"attack_move"`
	DamageFlash    time.Duration `yaml:"damage_flash"`
	DamageFlashes  int           `yaml:"damage_flashes"`
	TurnPause      time.Duration `yaml:"turn_pause"`
	IndicatorClear time.Duration `yaml:"indicator_clear"`
}

// DefaultTiming returns the stock animation timings.
func DefaultTiming() Timing {
	return Timing{
		AttackMove:     350 * time.Millisecond,
		DamageFlash:    120 * time.Millisecond,
		DamageFlashes:  2,
		TurnPause:      250 * time.Millisecond,
		IndicatorClear: 250 * time.Millisecond,
	}
}

// Battle holds all configuration for the battle simulator.
type Battle struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Seed for the random roller. 0 picks a time-based seed.
	Seed uint64 `yaml:"seed"`

	// Catalog source: "yaml" reads CatalogPath, "postgres" reads Database.
	CatalogSource string `yaml:"catalog_source"`
	CatalogPath   string `yaml:"catalog_path"`

	Database DatabaseConfig `yaml:"database"`

	// Rules
	EscapeFailPercent int `yaml:"escape_fail_percent"`
	MaxTurns          int `yaml:"max_turns"` // 0 = unlimited

	// Pacing
	Timing    Timing  `yaml:"timing"`
	RealTime  bool    `yaml:"real_time"`  // sleep through delays instead of fast-forwarding
	TimeScale float64 `yaml:"time_scale"` // multiplies delays in real-time mode

	// Batch simulation
	Workers int `yaml:"workers"`
}

// Catalog sources.
const (
	CatalogYAML     = "yaml"
	CatalogPostgres = "postgres"
)

// DefaultBattle returns Battle config with sensible defaults.
func DefaultBattle() Battle {
	return Battle{
		LogLevel:          "info",
		CatalogSource:     CatalogYAML,
		CatalogPath:       "config/catalog.yaml",
		Database:          DefaultDatabase(),
		EscapeFailPercent: 50,
		MaxTurns:          200,
		Timing:            DefaultTiming(),
		TimeScale:         1,
		Workers:           4,
	}
}

// Validate checks value ranges.
func (b Battle) Validate() error {
	var errs []error
	if b.EscapeFailPercent < 0 || b.EscapeFailPercent > 100 {
		errs = append(errs, fmt.Errorf("escape_fail_percent %d out of [0,100]", b.EscapeFailPercent))
	}
	if b.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max_turns %d is negative", b.MaxTurns))
	}
	if b.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d must be at least 1", b.Workers))
	}
	if b.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("time_scale %v is negative", b.TimeScale))
	}
	if b.Timing.DamageFlashes < 0 {
		errs = append(errs, fmt.Errorf("timing.damage_flashes %d is negative", b.Timing.DamageFlashes))
	}
	switch b.CatalogSource {
	case CatalogYAML, CatalogPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown catalog_source %q", b.CatalogSource))
	}
	return errors.Join(errs...)
}

// LoadBattle loads battle config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBattle(path string) (Battle, error) {
	cfg := DefaultBattle()

	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
