package combat

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// EventKind distinguishes the events an encounter and its entities emit.
type EventKind int

const (
	EventStart  EventKind = iota // encounter begins
	EventTurn                    // a turn begins; Name is the selected entity
	EventDamage                  // Amount damage was applied to Name
	EventHeal                    // Name was healed by Amount
	EventHealth                  // end-of-turn health report for Name
	EventDeath                   // Name died; the encounter ends
	EventFinish                  // encounter is over
)

// String returns a lowercase label for the EventKind.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventTurn:
		return "turn"
	case EventDamage:
		return "damage"
	case EventHeal:
		return "heal"
	case EventHealth:
		return "health"
	case EventDeath:
		return "death"
	case EventFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Event records one observable thing that happened.
type Event struct {
	Kind     EventKind
	Turn     int    // zero for entity-emitted events
	EntityID string // empty for start and finish
	Name     string
	Action   ActionID
	Amount   int
	Health   int
}

// Narrative renders the event as the console line shown to the user.
// Start, damage, heal, health, death, and finish have text; turn is blank.
func (ev Event) Narrative() string {
	switch ev.Kind {
	case EventStart:
		return "Start game."
	case EventDamage:
		return fmt.Sprintf("Deal %d damage to %s.", ev.Amount, ev.Name)
	case EventHeal:
		return fmt.Sprintf("Heal %s by %d points.", ev.Name, ev.Amount)
	case EventHealth:
		return fmt.Sprintf("%s has %d health points.", ev.Name, ev.Health)
	case EventDeath:
		return fmt.Sprintf("\nPlayer %s died.", ev.Name)
	case EventFinish:
		return "Finish game."
	default:
		return ""
	}
}

// Sink receives events.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// NopSink discards every event.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(Event) {}

// ConsoleSink writes each event's Narrative as one line.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink returns a ConsoleSink writing to w.
//
// Precondition: w must be non-nil.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Emit writes ev.Narrative() followed by a newline. Write errors are dropped.
func (c *ConsoleSink) Emit(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, ev.Narrative())
}

// LogSink writes each event as a structured log entry at info level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a LogSink writing to logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs ev.
func (l *LogSink) Emit(ev Event) {
	fields := []zap.Field{
		zap.String("kind", ev.Kind.String()),
	}
	if ev.Turn > 0 {
		fields = append(fields, zap.Int("turn", ev.Turn))
	}
	if ev.EntityID != "" {
		fields = append(fields,
			zap.String("entity_id", ev.EntityID),
			zap.String("entity", ev.Name),
			zap.Int("health", ev.Health),
		)
	}
	switch ev.Kind {
	case EventTurn:
		fields = append(fields, zap.Stringer("action", ev.Action))
	case EventDamage, EventHeal:
		fields = append(fields, zap.Int("amount", ev.Amount))
	}
	l.logger.Info("combat event", fields...)
}

// MultiSink fans each event out to every sink in order.
type MultiSink []Sink

// Emit forwards ev to each sink.
func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}
