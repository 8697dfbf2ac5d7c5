package combat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/game/dice"
)

// ErrTurnLimit is returned by Run when the encounter reaches its turn cap
// without a death.
var ErrTurnLimit = errors.New("combat: turn limit reached")

// ErrEncounterOver is returned by Step once the encounter has ended.
var ErrEncounterOver = errors.New("combat: encounter is over")

// TurnResult describes one resolved turn.
type TurnResult struct {
	Turn   int
	Actor  *Entity
	Action ActionID
	// Over is true when Actor died during this turn.
	Over bool
}

// Result summarizes a completed encounter.
type Result struct {
	Turns int
	// Loser is the entity whose death ended the encounter; nil when the
	// encounter stopped for any other reason.
	Loser *Entity
}

// Encounter drives participants through turns until the acting participant dies.
// It is not safe for concurrent use.
type Encounter struct {
	participants []*Entity
	src          dice.Source
	sink         Sink
	logger       *zap.Logger
	maxTurns     int
	turn         int
	started      bool
	over         bool
}

// EncounterOption configures an Encounter.
type EncounterOption func(*Encounter)

// WithEncounterSink routes start, turn, health, death, and finish events to s.
func WithEncounterSink(s Sink) EncounterOption {
	return func(e *Encounter) { e.sink = s }
}

// WithEncounterLogger sets the encounter's logger.
func WithEncounterLogger(l *zap.Logger) EncounterOption {
	return func(e *Encounter) { e.logger = l }
}

// WithMaxTurns caps the number of turns Run will play. Zero means no cap.
func WithMaxTurns(n int) EncounterOption {
	return func(e *Encounter) { e.maxTurns = n }
}

// NewEncounter creates an encounter over participants using src for every
// participant and action selection.
//
// Precondition: len(participants) >= 2 with no nil entries; src must be non-nil.
// Postcondition: Returns a ready Encounter or an error wrapping ErrInvalidArgument.
func NewEncounter(participants []*Entity, src dice.Source, opts ...EncounterOption) (*Encounter, error) {
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: encounter needs at least 2 participants, got %d", ErrInvalidArgument, len(participants))
	}
	for i, p := range participants {
		if p == nil {
			return nil, fmt.Errorf("%w: participant %d is nil", ErrInvalidArgument, i)
		}
	}
	if src == nil {
		return nil, fmt.Errorf("%w: encounter needs a random source", ErrInvalidArgument)
	}
	enc := &Encounter{
		participants: append([]*Entity(nil), participants...),
		src:          src,
		sink:         NopSink{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(enc)
	}
	if enc.logger == nil {
		enc.logger = zap.NewNop()
	}
	if enc.sink == nil {
		enc.sink = NopSink{}
	}
	if enc.maxTurns < 0 {
		return nil, fmt.Errorf("%w: max turns %d is negative", ErrInvalidArgument, enc.maxTurns)
	}
	return enc, nil
}

// Participants returns a copy of the participant list.
func (e *Encounter) Participants() []*Entity {
	return append([]*Entity(nil), e.participants...)
}

// Turn returns the number of turns played so far.
func (e *Encounter) Turn() int { return e.turn }

// Over reports whether a participant's death has ended the encounter.
func (e *Encounter) Over() bool { return e.over }

// selectParticipant picks uniformly among all participants. Dead participants
// stay eligible; the first death ends the encounter before that matters.
func (e *Encounter) selectParticipant() *Entity {
	return e.participants[e.src.Intn(len(e.participants))]
}

// Step plays one turn: select a participant, sample and perform its action,
// report every participant's health, and detect death of the actor.
//
// Postcondition: On success Turn() has advanced by one. Returns
// ErrEncounterOver if called after the encounter ended.
func (e *Encounter) Step() (TurnResult, error) {
	if e.over {
		return TurnResult{}, ErrEncounterOver
	}
	if !e.started {
		e.started = true
		e.sink.Emit(Event{Kind: EventStart})
	}

	e.turn++
	actor := e.selectParticipant()
	action, err := actor.SampleAction(e.src)
	if err != nil {
		return TurnResult{}, fmt.Errorf("turn %d: %w", e.turn, err)
	}
	e.sink.Emit(Event{Kind: EventTurn, Turn: e.turn, EntityID: actor.ID(), Name: actor.Name(), Action: action, Health: actor.Health()})
	e.logger.Debug("turn",
		zap.Int("turn", e.turn),
		zap.String("actor", actor.Name()),
		zap.Stringer("action", action),
	)

	if err := actor.Perform(action); err != nil {
		return TurnResult{}, fmt.Errorf("turn %d: %s performing %s: %w", e.turn, actor.Name(), action, err)
	}

	for _, p := range e.participants {
		e.sink.Emit(Event{Kind: EventHealth, Turn: e.turn, EntityID: p.ID(), Name: p.Name(), Health: p.Health()})
	}

	res := TurnResult{Turn: e.turn, Actor: actor, Action: action}
	if !actor.Alive() {
		e.over = true
		res.Over = true
		e.sink.Emit(Event{Kind: EventDeath, Turn: e.turn, EntityID: actor.ID(), Name: actor.Name()})
		e.sink.Emit(Event{Kind: EventFinish, Turn: e.turn})
	}
	return res, nil
}

// Run plays turns until a participant dies, the turn cap is reached, or ctx
// is cancelled. Cancellation is observed between turns.
//
// Postcondition: On success Result.Loser is the dead participant.
func (e *Encounter) Run(ctx context.Context) (Result, error) {
	e.logger.Info("encounter started", zap.Int("participants", len(e.participants)))
	for {
		if err := ctx.Err(); err != nil {
			return Result{Turns: e.turn}, err
		}
		if e.maxTurns > 0 && e.turn >= e.maxTurns {
			e.logger.Warn("encounter stopped at turn limit", zap.Int("max_turns", e.maxTurns))
			return Result{Turns: e.turn}, fmt.Errorf("%w after %d turns", ErrTurnLimit, e.turn)
		}
		res, err := e.Step()
		if err != nil {
			return Result{Turns: e.turn}, err
		}
		if res.Over {
			e.logger.Info("encounter finished",
				zap.Int("turns", e.turn),
				zap.String("loser", res.Actor.Name()),
			)
			return Result{Turns: e.turn, Loser: res.Actor}, nil
		}
	}
}
