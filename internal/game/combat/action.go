package combat

import "github.com/cory-johannsen/duel/internal/game/dice"

// ActionID identifies one thing an entity may do on its turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionID int

const (
	ActionUnknown     ActionID = iota // zero value; intentionally invalid
	ActionSmallDamage                 // damage drawn from Ranges.SmallDamage
	ActionWideDamage                  // damage drawn from Ranges.WideDamage
	ActionHeal                        // healing drawn from Ranges.Heal
)

// Actions returns the action set every entity's chance table is built over,
// in table order.
//
// Postcondition: Returns a fresh slice on every call.
func Actions() []ActionID {
	return []ActionID{ActionSmallDamage, ActionWideDamage, ActionHeal}
}

// String returns the human-readable name of the ActionID.
// Postcondition: returns "small_damage", "wide_damage", "heal", or "unknown".
func (a ActionID) String() string {
	switch a {
	case ActionSmallDamage:
		return "small_damage"
	case ActionWideDamage:
		return "wide_damage"
	case ActionHeal:
		return "heal"
	default:
		return "unknown"
	}
}

// Ranges holds the inclusive draw range for each action.
type Ranges struct {
	SmallDamage dice.Range
	WideDamage  dice.Range
	Heal        dice.Range
}

// DefaultRanges returns the standard ranges: small damage 18-25, wide damage
// 10-35, heal 18-25.
func DefaultRanges() Ranges {
	return Ranges{
		SmallDamage: dice.Range{Min: 18, Max: 25},
		WideDamage:  dice.Range{Min: 10, Max: 35},
		Heal:        dice.Range{Min: 18, Max: 25},
	}
}
