// Package roster provides combatant template definitions loaded from YAML and
// builds live combat entities from them.
package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/dice"
)

// HealBoost is the YAML form of a reactive heal boost rule.
type HealBoost struct {
	// Chance is the heal weight applied while the boost is active.
	Chance float64 `yaml:"chance"`
	// Condition is the health fraction of combat.ReferenceHealth at or below
	// which the boost activates.
	Condition float64 `yaml:"condition"`
}

// Template defines one combatant loaded from YAML.
type Template struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Health    int        `yaml:"health"`
	HealBoost *HealBoost `yaml:"heal_boost"` // nil = no reactive behavior
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Health >= 1, and
// any HealBoost has Chance and Condition within [0, 1].
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("combatant template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("combatant template %q: name must not be empty", t.ID)
	}
	if t.Health < 1 {
		return fmt.Errorf("combatant template %q: health must be >= 1", t.ID)
	}
	if hb := t.HealBoost; hb != nil {
		if hb.Chance < 0 || hb.Chance > 1 {
			return fmt.Errorf("combatant template %q: heal_boost.chance %v must be within [0, 1]", t.ID, hb.Chance)
		}
		if hb.Condition < 0 || hb.Condition > 1 {
			return fmt.Errorf("combatant template %q: heal_boost.condition %v must be within [0, 1]", t.ID, hb.Condition)
		}
	}
	return nil
}

// Build creates a live entity from the template. A fresh HealBoost policy is
// allocated per call, so entities never share boost state.
//
// Precondition: t must have passed Validate; roller must be non-nil.
// Postcondition: Returns an entity with ID t.ID, or an error.
func (t *Template) Build(roller *dice.Roller, logger *zap.Logger, opts ...combat.Option) (*combat.Entity, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	all := []combat.Option{combat.WithID(t.ID), combat.WithLogger(logger)}
	if t.HealBoost != nil {
		boost, err := combat.NewHealBoost(t.HealBoost.Chance, t.HealBoost.Condition, logger)
		if err != nil {
			return nil, fmt.Errorf("combatant %q: %w", t.ID, err)
		}
		all = append(all, combat.WithPolicy(boost))
	}
	all = append(all, opts...)
	e, err := combat.NewEntity(t.Name, t.Health, roller, all...)
	if err != nil {
		return nil, fmt.Errorf("combatant %q: %w", t.ID, err)
	}
	return e, nil
}

// DefaultTemplates returns the standard pair: a reactive "Computer" that boosts
// healing to 0.45 at or below 0.35 health, and a plain "Human". Both start at 100.
//
// Postcondition: Returns fresh templates on every call.
func DefaultTemplates() []*Template {
	return []*Template{
		{ID: "computer", Name: "Computer", Health: 100, HealBoost: &HealBoost{Chance: 0.45, Condition: 0.35}},
		{ID: "human", Name: "Human", Health: 100},
	}
}

// LoadTemplateFromBytes parses a single combatant template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates
// in directory order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure, or on a duplicate ID; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading combatants dir %q: %w", dir, err)
	}

	var templates []*Template
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if prev, dup := seen[tmpl.ID]; dup {
			return nil, fmt.Errorf("loading %q: combatant id %q already defined in %q", path, tmpl.ID, prev)
		}
		seen[tmpl.ID] = path
		templates = append(templates, tmpl)
	}
	return templates, nil
}
