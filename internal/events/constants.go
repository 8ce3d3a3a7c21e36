package events

// Event type constants
const (
	// Roster Events
	EventTypeCharacterJoined  EventType = "character_joined"
	EventTypeCharacterRemoved EventType = "character_removed"

	// Battle Flow Events
	EventTypeBattleStarted EventType = "battle_started"
	EventTypeTurnAdvanced  EventType = "turn_advanced"
	EventTypeBattleEnded   EventType = "battle_ended"

	// Combat Events
	EventTypeAttackResolved    EventType = "attack_resolved"
	EventTypeCharacterDefeated EventType = "character_defeated"
)

// AllEventTypes lists every event the battle service emits
var AllEventTypes = []EventType{
	EventTypeCharacterJoined,
	EventTypeCharacterRemoved,
	EventTypeBattleStarted,
	EventTypeTurnAdvanced,
	EventTypeBattleEnded,
	EventTypeAttackResolved,
	EventTypeCharacterDefeated,
}

// Priority levels for listener order
const (
	PriorityAudit    = 0   // Must see the event before anyone can cancel it
	PriorityDefault  = 100 // Ordinary reactions
	PriorityLogging  = 400 // Log what survived
	PriorityTrailing = 500 // Cleanup
)
