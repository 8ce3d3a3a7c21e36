package events_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KirkDiggler/battle-bot-discord/internal/domain/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/battle-bot-discord/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	// Track execution order
	var executionOrder []string
	record := func(id string) func(events.Event) error {
		return func(events.Event) error {
			executionOrder = append(executionOrder, id)
			return nil
		}
	}

	// Subscribe out of order
	bus.Subscribe(events.EventTypeAttackResolved, events.NewListenerFunc("low", 300, record("low")))
	bus.Subscribe(events.EventTypeAttackResolved, events.NewListenerFunc("high", 100, record("high")))
	bus.Subscribe(events.EventTypeAttackResolved, events.NewListenerFunc("medium", 200, record("medium")))
	bus.Subscribe(events.EventTypeAttackResolved, events.NewListenerFunc("medium-2", 200, record("medium-2")))

	err := bus.Emit(events.NewAttackResolvedEvent(nil, nil, &battle.AttackResult{}))
	require.NoError(t, err)

	// lower priority number runs first, ties keep subscription order
	assert.Equal(t, []string{"high", "medium", "medium-2", "low"}, executionOrder)
}

func TestEventBus_ListenerErrorStopsPropagation(t *testing.T) {
	bus := events.NewBus()
	called := false

	bus.Subscribe(events.EventTypeBattleEnded, events.NewListenerFunc("broken", 100, func(events.Event) error {
		return errors.New("boom")
	}))
	bus.Subscribe(events.EventTypeBattleEnded, events.NewListenerFunc("after", 200, func(events.Event) error {
		called = true
		return nil
	}))

	err := bus.Emit(events.NewBattleEndedEvent(battle.ResultHeroTeamWins, false))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener broken failed: boom")
	assert.False(t, called)
}

func TestEventBus_SubscribeAllCoversEveryEventType(t *testing.T) {
	bus := events.NewBus()
	seen := make(map[events.EventType]int)

	bus.SubscribeAll(events.NewListenerFunc("all", events.PriorityDefault, func(e events.Event) error {
		seen[e.GetType()]++
		return nil
	}))
	bus.Subscribe(events.EventTypeTurnAdvanced, events.NewListenerFunc("turns", events.PriorityDefault, func(e events.Event) error {
		seen[e.GetType()]++
		return nil
	}))

	arthur := character.New("Arthur", character.TypeHero, 10, 10, 10, 10)
	require.NoError(t, bus.Emit(events.NewCharacterJoinedEvent(arthur, false)))
	require.NoError(t, bus.Emit(events.NewTurnAdvancedEvent(arthur, "Arthur", 0, false)))

	assert.Equal(t, map[events.EventType]int{
		events.EventTypeCharacterJoined: 1,
		events.EventTypeTurnAdvanced:    2,
	}, seen)
}

func TestLogListener_DescribesEvents(t *testing.T) {
	var lines []string
	listener := events.NewLogListenerWithLogger(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	bus := events.NewBus()
	bus.SubscribeAll(listener)

	arthur := character.New("Arthur", character.TypeHero, 100, 50, 50, 10)
	zorg := character.New("Zorg", character.TypeVillain, 100, 50, 50, 5)

	emitted := []events.Event{
		events.NewCharacterJoinedEvent(arthur, false),
		events.NewCharacterJoinedEvent(zorg, true),
		events.NewBattleStartedEvent(arthur, []string{"Arthur", "Zorg"}),
		events.NewAttackResolvedEvent(arthur, zorg, &battle.AttackResult{Roll: 20, AttackCount: 2, TotalDamage: 18, Hits: []battle.Hit{{Damage: 18}, {Missed: true}}}),
		events.NewCharacterDefeatedEvent(zorg, "Arthur"),
		events.NewTurnAdvancedEvent(zorg, "Arthur", 1, true),
		events.NewCharacterRemovedEvent(zorg),
		events.NewBattleEndedEvent(battle.ResultHeroTeamWins, false),
		events.NewBattleEndedEvent(battle.ResultNone, true),
	}
	for _, e := range emitted {
		require.NoError(t, bus.Emit(e))
	}

	assert.Equal(t, []string{
		"[Battle] Arthur joined the Hero Team",
		"[Battle] Zorg joined as a reinforcement for the Villain Team",
		"[Battle] battle started with 2 characters, Arthur acts first",
		"[Battle] Arthur hit Zorg for 18 (roll 20, 2 swings, 1 missed)",
		"[Battle] Zorg was defeated by Arthur",
		"[Battle] Arthur skipped, Zorg is up",
		"[Battle] Zorg was removed",
		"[Battle] battle over, Hero Team wins!",
		"[Battle] battle ended by command",
	}, lines)
}
