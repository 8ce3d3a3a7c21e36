package events

import (
	"fmt"
	"log"
)

// ListenerFunc adapts a function into an EventListener
type ListenerFunc struct {
	id       string
	priority int
	fn       func(Event) error
}

// NewListenerFunc creates a listener from fn
func NewListenerFunc(id string, priority int, fn func(Event) error) *ListenerFunc {
	return &ListenerFunc{id: id, priority: priority, fn: fn}
}

func (l *ListenerFunc) ID() string                { return l.id }
func (l *ListenerFunc) Priority() int             { return l.priority }
func (l *ListenerFunc) HandleEvent(e Event) error { return l.fn(e) }

// LogListener writes a one line summary of every event it receives
type LogListener struct {
	logf func(format string, args ...any)
}

// NewLogListener creates a listener writing to the standard logger
func NewLogListener() *LogListener {
	return &LogListener{logf: log.Printf}
}

// NewLogListenerWithLogger creates a listener writing through logf
func NewLogListenerWithLogger(logf func(format string, args ...any)) *LogListener {
	return &LogListener{logf: logf}
}

func (l *LogListener) ID() string    { return "battle-log" }
func (l *LogListener) Priority() int { return PriorityLogging }

// HandleEvent logs the event and never fails
func (l *LogListener) HandleEvent(e Event) error {
	l.logf("[Battle] %s", Describe(e))
	return nil
}

func name(e Event, target bool) string {
	c := e.GetActor()
	if target {
		c = e.GetTarget()
	}
	if c == nil {
		return "nobody"
	}
	return c.Name
}

// Describe renders an event as a short log line
func Describe(e Event) string {
	switch ev := e.(type) {
	case *CharacterJoinedEvent:
		if ev.Reinforcement {
			return fmt.Sprintf("%s joined as a reinforcement for the %s", name(e, false), ev.Actor.Team)
		}
		return fmt.Sprintf("%s joined the %s", name(e, false), ev.Actor.Team)
	case *CharacterRemovedEvent:
		return fmt.Sprintf("%s was removed", name(e, false))
	case *BattleStartedEvent:
		return fmt.Sprintf("battle started with %d characters, %s acts first", len(ev.TurnOrder), name(e, false))
	case *AttackResolvedEvent:
		return fmt.Sprintf("%s hit %s for %d (roll %d, %d swings, %d missed)",
			name(e, false), name(e, true), ev.Result.TotalDamage, ev.Result.Roll, ev.Result.AttackCount, ev.Result.Misses())
	case *CharacterDefeatedEvent:
		return fmt.Sprintf("%s was defeated by %s", name(e, false), ev.DefeatedBy)
	case *TurnAdvancedEvent:
		if ev.Skipped {
			return fmt.Sprintf("%s skipped, %s is up", ev.Previous, name(e, false))
		}
		return fmt.Sprintf("turn %d goes to %s", ev.TurnNumber+1, name(e, false))
	case *BattleEndedEvent:
		if ev.Forced {
			return "battle ended by command"
		}
		return fmt.Sprintf("battle over, %s", ev.Result)
	default:
		return string(e.GetType())
	}
}
