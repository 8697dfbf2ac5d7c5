package combat

import (
	"fmt"

	"go.uber.org/zap"
)

// Policy reacts to health changes on the entity it is attached to.
// Each Policy instance belongs to exactly one entity.
type Policy interface {
	// AfterDamage runs after every ApplyDamage on e.
	AfterDamage(e *Entity) error
	// AfterHeal runs after every ApplyHeal on a living e.
	AfterHeal(e *Entity) error
}

// ActionChance describes one reactive rule: the chance to apply to an action,
// the condition under which it applies, and whether it is currently applied.
type ActionChance struct {
	// Chance is the weight in [0, 1] given to the action while enabled.
	Chance float64
	// Condition is the health fraction (of ReferenceHealth) at or below which
	// the rule enables.
	Condition float64
	// Enabled is true while the rule's weight is applied to the table.
	Enabled bool
}

// HealBoost raises the heal weight once health falls to the threshold, and
// restores a uniform table once healing lifts health above it.
//
// Invariant: Active() is true exactly when the heal override is applied.
type HealBoost struct {
	rule   ActionChance
	logger *zap.Logger
}

// NewHealBoost returns a HealBoost that sets the heal weight to triggerWeight
// when health/ReferenceHealth <= threshold.
//
// Precondition: 0 <= triggerWeight <= 1; 0 <= threshold <= 1.
// Postcondition: Returns an inactive HealBoost or an error wrapping ErrInvalidArgument.
func NewHealBoost(triggerWeight, threshold float64, logger *zap.Logger) (*HealBoost, error) {
	if !(triggerWeight >= 0 && triggerWeight <= 1) {
		return nil, fmt.Errorf("%w: heal boost chance %v must be within [0, 1]", ErrInvalidArgument, triggerWeight)
	}
	if !(threshold >= 0 && threshold <= 1) {
		return nil, fmt.Errorf("%w: heal boost condition %v must be within [0, 1]", ErrInvalidArgument, threshold)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealBoost{
		rule:   ActionChance{Chance: triggerWeight, Condition: threshold},
		logger: logger,
	}, nil
}

// Active reports whether the heal override is currently applied.
func (h *HealBoost) Active() bool { return h.rule.Enabled }

// Rule returns a copy of the boost's configuration and state.
func (h *HealBoost) Rule() ActionChance { return h.rule }

// AfterDamage applies the heal override when a living e is at or below the
// threshold. Repeating it while active rewrites the same weights.
func (h *HealBoost) AfterDamage(e *Entity) error {
	if !e.Alive() || e.healthFraction() > h.rule.Condition {
		return nil
	}
	if err := e.table.Override(ActionHeal, h.rule.Chance); err != nil {
		return fmt.Errorf("applying heal boost to %q: %w", e.Name(), err)
	}
	if !h.rule.Enabled {
		h.logger.Debug("heal boost activated",
			zap.String("entity", e.Name()),
			zap.Int("health", e.Health()),
			zap.Object("chances", e.table),
		)
	}
	h.rule.Enabled = true
	return nil
}

// AfterHeal restores a uniform table when the boost is active and e has been
// healed above the threshold.
func (h *HealBoost) AfterHeal(e *Entity) error {
	if !h.rule.Enabled || e.healthFraction() <= h.rule.Condition {
		return nil
	}
	e.table.RedistributeUniformly()
	h.rule.Enabled = false
	h.logger.Debug("heal boost deactivated",
		zap.String("entity", e.Name()),
		zap.Int("health", e.Health()),
	)
	return nil
}
