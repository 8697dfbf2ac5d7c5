// Package combat implements the duel combat engine: entities with weighted
// action tables, the reactive heal boost, and the turn loop.
package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/game/chance"
	"github.com/cory-johannsen/duel/internal/game/dice"
)

// ReferenceHealth is the fixed denominator used to express health as a
// fraction for reactive conditions. It is not the entity's starting health.
const ReferenceHealth = 100

// ErrInvalidArgument is returned when a caller violates an entity or
// encounter contract, such as a negative damage amount.
var ErrInvalidArgument = errors.New("combat: invalid argument")

// Entity is one named health pool taking part in an encounter.
//
// Invariant: Alive() == (Health() > 0). Once Alive() is false it stays false.
type Entity struct {
	id     string
	name   string
	health int
	alive  bool
	table  *chance.Table[ActionID]
	ranges Ranges
	roller *dice.Roller
	sink   Sink
	policy Policy
	logger *zap.Logger
}

// Option configures an Entity at construction.
type Option func(*Entity)

// WithID sets the entity ID; by default a random UUID is assigned.
func WithID(id string) Option {
	return func(e *Entity) { e.id = id }
}

// WithRanges replaces DefaultRanges.
func WithRanges(r Ranges) Option {
	return func(e *Entity) { e.ranges = r }
}

// WithSink routes the entity's damage and heal events to s.
func WithSink(s Sink) Option {
	return func(e *Entity) { e.sink = s }
}

// WithPolicy attaches a Policy invoked after every damage and heal.
func WithPolicy(p Policy) Option {
	return func(e *Entity) { e.policy = p }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Entity) { e.logger = l }
}

// NewEntity builds an entity with a uniform chance table over Actions().
//
// Precondition: name must be non-empty; roller must be non-nil.
// Postcondition: Alive() == (startingHealth > 0); the chance table is uniform.
func NewEntity(name string, startingHealth int, roller *dice.Roller, opts ...Option) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: entity name must not be empty", ErrInvalidArgument)
	}
	if roller == nil {
		return nil, fmt.Errorf("%w: entity %q needs a roller", ErrInvalidArgument, name)
	}
	table, err := chance.New(Actions())
	if err != nil {
		return nil, fmt.Errorf("building chance table for %q: %w", name, err)
	}
	e := &Entity{
		id:     uuid.New().String(),
		name:   name,
		health: startingHealth,
		alive:  startingHealth > 0,
		table:  table,
		ranges: DefaultRanges(),
		roller: roller,
		sink:   NopSink{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.sink == nil {
		e.sink = NopSink{}
	}
	if !e.alive {
		e.health = 0
	}
	return e, nil
}

// ID returns the entity's identifier.
func (e *Entity) ID() string { return e.id }

// Name returns the entity's display name.
func (e *Entity) Name() string { return e.name }

// Health returns the current health; never negative.
func (e *Entity) Health() int { return e.health }

// Alive reports whether the entity still has health.
func (e *Entity) Alive() bool { return e.alive }

// Table returns the entity's chance table.
func (e *Entity) Table() *chance.Table[ActionID] { return e.table }

// Policy returns the attached Policy, or nil.
func (e *Entity) Policy() Policy { return e.policy }

// healthFraction returns health relative to ReferenceHealth.
func (e *Entity) healthFraction() float64 {
	return float64(e.health) / ReferenceHealth
}

// setHealth applies the clamp-and-die rule.
//
// Postcondition: health >= 0; alive is false whenever health == 0.
func (e *Entity) setHealth(v int) {
	if v > 0 {
		e.health = v
		return
	}
	e.health = 0
	e.alive = false
}

// ApplyDamage subtracts amount from health, clamping at zero.
//
// Precondition: amount >= 0.
// Postcondition: Health() == max(0, previous-amount); on reaching zero the
// entity is dead. The attached Policy runs afterward.
func (e *Entity) ApplyDamage(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: damage amount %d is negative", ErrInvalidArgument, amount)
	}
	e.setHealth(e.health - amount)
	e.sink.Emit(Event{Kind: EventDamage, EntityID: e.id, Name: e.name, Amount: amount, Health: e.health})
	e.logger.Debug("damage applied",
		zap.String("entity", e.name),
		zap.Int("amount", amount),
		zap.Int("health", e.health),
		zap.Bool("alive", e.alive),
	)
	if e.policy != nil {
		return e.policy.AfterDamage(e)
	}
	return nil
}

// ApplyHeal adds amount to health. Healing has no ceiling. A dead entity is
// not resurrected: the call is a no-op and emits nothing.
//
// Precondition: amount >= 0.
// Postcondition: if alive, Health() == previous+amount and the attached Policy runs.
func (e *Entity) ApplyHeal(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: heal amount %d is negative", ErrInvalidArgument, amount)
	}
	if !e.alive {
		return nil
	}
	e.setHealth(e.health + amount)
	e.sink.Emit(Event{Kind: EventHeal, EntityID: e.id, Name: e.name, Amount: amount, Health: e.health})
	e.logger.Debug("heal applied",
		zap.String("entity", e.name),
		zap.Int("amount", amount),
		zap.Int("health", e.health),
	)
	if e.policy != nil {
		return e.policy.AfterHeal(e)
	}
	return nil
}

// DealSmallDamage damages the entity by a value drawn from Ranges.SmallDamage.
func (e *Entity) DealSmallDamage() error {
	return e.ApplyDamage(e.roller.Roll(e.ranges.SmallDamage))
}

// DealWideDamage damages the entity by a value drawn from Ranges.WideDamage.
func (e *Entity) DealWideDamage() error {
	return e.ApplyDamage(e.roller.Roll(e.ranges.WideDamage))
}

// Heal heals the entity by a value drawn from Ranges.Heal.
func (e *Entity) Heal() error {
	return e.ApplyHeal(e.roller.Roll(e.ranges.Heal))
}

// SampleAction draws an action from the entity's chance table.
//
// Postcondition: Returns an action with positive weight or an error wrapping
// chance.ErrInvalidArgument.
func (e *Entity) SampleAction(src chance.Source) (ActionID, error) {
	a, err := e.table.Sample(src)
	if err != nil {
		return ActionUnknown, fmt.Errorf("sampling action for %q: %w", e.name, err)
	}
	return a, nil
}

// dispatch binds each performable ActionID to its behavior.
var dispatch = map[ActionID]func(*Entity) error{
	ActionSmallDamage: (*Entity).DealSmallDamage,
	ActionWideDamage:  (*Entity).DealWideDamage,
	ActionHeal:        (*Entity).Heal,
}

// Perform runs the behavior bound to a.
//
// Precondition: a is one of Actions().
// Postcondition: Returns an error wrapping ErrInvalidArgument for any other value.
func (e *Entity) Perform(a ActionID) error {
	fn, ok := dispatch[a]
	if !ok {
		return fmt.Errorf("%w: action %v is not performable", ErrInvalidArgument, a)
	}
	return fn(e)
}
