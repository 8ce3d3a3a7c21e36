package events

import (
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
)

// EventType represents the type of battle event
type EventType string

// Event is the base interface for all battle events
type Event interface {
	GetType() EventType
	GetActor() *character.Character
	GetTarget() *character.Character
}

// BaseEvent provides common implementation for all events.
// Actor and Target are snapshots, mutating them does not affect the battle.
type BaseEvent struct {
	Type   EventType
	Actor  *character.Character
	Target *character.Character
}

func (e *BaseEvent) GetType() EventType              { return e.Type }
func (e *BaseEvent) GetActor() *character.Character  { return e.Actor }
func (e *BaseEvent) GetTarget() *character.Character { return e.Target }
