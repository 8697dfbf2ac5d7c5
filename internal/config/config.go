// Package config provides Viper-based configuration loading for the duel simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EncounterConfig holds turn loop settings.
type EncounterConfig struct {
	// Seed makes a run reproducible. Zero means a fresh random seed is drawn
	// and logged.
	Seed int64 `mapstructure:"seed"`
	// MaxTurns caps the number of turns. Zero means no cap.
	MaxTurns int `mapstructure:"max_turns"`
	// CombatantsDir is a directory of combatant YAML templates. Empty means
	// the default Computer and Human pair.
	CombatantsDir string `mapstructure:"combatants_dir"`
}

// ActionsConfig holds the draw range of each action as "min-max" strings.
type ActionsConfig struct {
	SmallDamage string `mapstructure:"small_damage"`
	WideDamage  string `mapstructure:"wide_damage"`
	Heal        string `mapstructure:"heal"`
}

// Ranges parses every action range.
//
// Postcondition: Returns combat.Ranges or the first parse error.
func (a ActionsConfig) Ranges() (combat.Ranges, error) {
	small, err := dice.ParseRange(a.SmallDamage)
	if err != nil {
		return combat.Ranges{}, fmt.Errorf("actions.small_damage: %w", err)
	}
	wide, err := dice.ParseRange(a.WideDamage)
	if err != nil {
		return combat.Ranges{}, fmt.Errorf("actions.wide_damage: %w", err)
	}
	heal, err := dice.ParseRange(a.Heal)
	if err != nil {
		return combat.Ranges{}, fmt.Errorf("actions.heal: %w", err)
	}
	return combat.Ranges{SmallDamage: small, WideDamage: wide, Heal: heal}, nil
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Encounter EncounterConfig `mapstructure:"encounter"`
	Actions   ActionsConfig   `mapstructure:"actions"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEncounter(c.Encounter); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateActions(c.Actions); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEncounter(e EncounterConfig) error {
	if e.MaxTurns < 0 {
		return fmt.Errorf("encounter.max_turns must be >= 0, got %d", e.MaxTurns)
	}
	return nil
}

func validateActions(a ActionsConfig) error {
	var errs []string
	for _, f := range []struct{ name, expr string }{
		{"actions.small_damage", a.SmallDamage},
		{"actions.wide_damage", a.WideDamage},
		{"actions.heal", a.Heal},
	} {
		if _, err := dice.ParseRange(f.expr); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", f.name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment variables only.
//
// Precondition: path must be empty or a valid path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DUEL_ prefix
	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("encounter.seed", 0)
	v.SetDefault("encounter.max_turns", 0)
	v.SetDefault("encounter.combatants_dir", "")

	r := combat.DefaultRanges()
	v.SetDefault("actions.small_damage", r.SmallDamage.String())
	v.SetDefault("actions.wide_damage", r.WideDamage.String())
	v.SetDefault("actions.heal", r.Heal.String())
}
