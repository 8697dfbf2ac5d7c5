package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/dice"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Encounter: EncounterConfig{
			Seed:     7,
			MaxTurns: 0,
		},
		Actions: ActionsConfig{
			SmallDamage: "18-25",
			WideDamage:  "10-35",
			Heal:        "18-25",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestActionsRanges(t *testing.T) {
	r, err := validConfig().Actions.Ranges()
	require.NoError(t, err)
	assert.Equal(t, combat.DefaultRanges(), r)
}

func TestActionsRanges_Invalid(t *testing.T) {
	cfg := validConfig()
	cfg.Actions.Heal = "25-18"
	_, err := cfg.Actions.Ranges()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "actions.heal")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
encounter:
  seed: 1234
  max_turns: 50
  combatants_dir: content/combatants
actions:
  small_damage: "5-6"
  wide_damage: "1-9"
  heal: "2-3"
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(1234), cfg.Encounter.Seed)
	assert.Equal(t, 50, cfg.Encounter.MaxTurns)
	assert.Equal(t, "content/combatants", cfg.Encounter.CombatantsDir)
	r, err := cfg.Actions.Ranges()
	require.NoError(t, err)
	assert.Equal(t, dice.Range{Min: 5, Max: 6}, r.SmallDamage)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Zero(t, cfg.Encounter.Seed)
	assert.Zero(t, cfg.Encounter.MaxTurns)
	r, err := cfg.Actions.Ranges()
	require.NoError(t, err)
	assert.Equal(t, combat.DefaultRanges(), r)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DUEL_ENCOUNTER_MAX_TURNS", "9")
	t.Setenv("DUEL_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Encounter.MaxTurns)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViperDefaults(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "18-25", cfg.Actions.SmallDamage)
	assert.Equal(t, "10-35", cfg.Actions.WideDamage)
}

func TestValidateLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateNegativeMaxTurns(t *testing.T) {
	cfg := validConfig()
	cfg.Encounter.MaxTurns = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Actions.SmallDamage = "x"
	cfg.Actions.Heal = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "actions.small_damage")
	assert.Contains(t, err.Error(), "actions.heal")
}

func TestValidate_Property_MaxTurns(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1000, 1000).Draw(rt, "max_turns")
		cfg := validConfig()
		cfg.Encounter.MaxTurns = n
		if n < 0 {
			assert.Error(rt, cfg.Validate())
		} else {
			assert.NoError(rt, cfg.Validate())
		}
	})
}
