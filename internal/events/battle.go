package events

import (
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
)

// CharacterJoinedEvent is emitted when a character is added to the roster
type CharacterJoinedEvent struct {
	BaseEvent
	Reinforcement bool
}

// CharacterRemovedEvent is emitted when a character is taken off the roster
type CharacterRemovedEvent struct {
	BaseEvent
}

// BattleStartedEvent is emitted when the battle goes active
type BattleStartedEvent struct {
	BaseEvent
	TurnOrder []string
}

// AttackResolvedEvent is emitted after an attack has been applied
type AttackResolvedEvent struct {
	BaseEvent
	Result *battle.AttackResult
}

// CharacterDefeatedEvent is emitted when a character drops to zero HP
type CharacterDefeatedEvent struct {
	BaseEvent
	DefeatedBy string
}

// TurnAdvancedEvent is emitted when the turn passes. Actor is the character now acting.
type TurnAdvancedEvent struct {
	BaseEvent
	Skipped    bool
	Previous   string
	TurnNumber int
}

// BattleEndedEvent is emitted when a team wins or the battle is ended by command
type BattleEndedEvent struct {
	BaseEvent
	Result battle.Result
	Forced bool
}

// NewCharacterJoinedEvent creates a join event
func NewCharacterJoinedEvent(c *character.Character, reinforcement bool) *CharacterJoinedEvent {
	return &CharacterJoinedEvent{
		BaseEvent:     BaseEvent{Type: EventTypeCharacterJoined, Actor: c},
		Reinforcement: reinforcement,
	}
}

// NewCharacterRemovedEvent creates a removal event
func NewCharacterRemovedEvent(c *character.Character) *CharacterRemovedEvent {
	return &CharacterRemovedEvent{
		BaseEvent: BaseEvent{Type: EventTypeCharacterRemoved, Actor: c},
	}
}

// NewBattleStartedEvent creates a start event. Actor is the first to act.
func NewBattleStartedEvent(first *character.Character, order []string) *BattleStartedEvent {
	return &BattleStartedEvent{
		BaseEvent: BaseEvent{Type: EventTypeBattleStarted, Actor: first},
		TurnOrder: order,
	}
}

// NewAttackResolvedEvent creates an attack event
func NewAttackResolvedEvent(attacker, defender *character.Character, result *battle.AttackResult) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent: BaseEvent{Type: EventTypeAttackResolved, Actor: attacker, Target: defender},
		Result:    result,
	}
}

// NewCharacterDefeatedEvent creates a defeat event. Actor is the defeated character.
func NewCharacterDefeatedEvent(defeated *character.Character, by string) *CharacterDefeatedEvent {
	return &CharacterDefeatedEvent{
		BaseEvent:  BaseEvent{Type: EventTypeCharacterDefeated, Actor: defeated},
		DefeatedBy: by,
	}
}

// NewTurnAdvancedEvent creates a turn event
func NewTurnAdvancedEvent(next *character.Character, previous string, turn int, skipped bool) *TurnAdvancedEvent {
	return &TurnAdvancedEvent{
		BaseEvent:  BaseEvent{Type: EventTypeTurnAdvanced, Actor: next},
		Skipped:    skipped,
		Previous:   previous,
		TurnNumber: turn,
	}
}

// NewBattleEndedEvent creates an end event
func NewBattleEndedEvent(result battle.Result, forced bool) *BattleEndedEvent {
	return &BattleEndedEvent{
		BaseEvent: BaseEvent{Type: EventTypeBattleEnded},
		Result:    result,
		Forced:    forced,
	}
}
