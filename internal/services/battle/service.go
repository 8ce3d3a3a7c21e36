package battle

//go:generate mockgen -destination=mock/mock_service.go -package=mockbattle -source=service.go

import (
	"context"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/KirkDiggler/battle-bot-discord/internal/dice"
	battledomain "github.com/KirkDiggler/battle-bot-discord/internal/domain/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
	"github.com/KirkDiggler/battle-bot-discord/internal/events"
	"github.com/KirkDiggler/battle-bot-discord/internal/uuid"
)

// Service defines the battle service interface
type Service interface {
	// AddCharacter creates a character and puts it on the roster
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)

	// RemoveCharacter takes a character off the roster by name
	RemoveCharacter(ctx context.Context, name string) (*character.Character, error)

	// StartBattle moves the battle to active
	StartBattle(ctx context.Context) (*StartBattleOutput, error)

	// Attack resolves an attack by the current actor
	Attack(ctx context.Context, callerID, targetName string) (*AttackOutput, error)

	// SkipTurn passes the current actor's turn
	SkipTurn(ctx context.Context, callerID string) (*SkipTurnOutput, error)

	// GetStatus returns a snapshot of both teams
	GetStatus(ctx context.Context) (*Status, error)

	// GetTurnOrder returns the acting order of an active battle
	GetTurnOrder(ctx context.Context) (*TurnOrder, error)

	// GetTargets lists the living enemies of the caller's character
	GetTargets(ctx context.Context, callerID string) (*Targets, error)

	// EndBattle discards the battle and starts fresh
	EndBattle(ctx context.Context) error
}

// AddCharacterInput contains data for creating a character
type AddCharacterInput struct {
	Name   string
	Type   string
	HP     int
	MP     int
	Mental int
	Speed  int

	// OwnerID is recorded for Hero Team characters only
	OwnerID string

	// Reinforcement allows joining an active battle
	Reinforcement bool
}

// AddCharacterOutput is the result of adding a character
type AddCharacterOutput struct {
	Character *character.Character

	// Status is set when the character joined a battle in progress
	Status *Status
}

// StartBattleOutput describes the opening of a battle
type StartBattleOutput struct {
	HeroTeam    []*character.Character
	VillainTeam []*character.Character
	TurnOrder   []*character.Character
	First       *character.Character
	Status      *Status
}

// AttackOutput describes an attack and what followed it
type AttackOutput struct {
	Result   *battledomain.AttackResult
	Attacker *character.Character
	Defender *character.Character

	// Outcome is set when the attack ended the battle. The battle has already been reset.
	Outcome battledomain.Result

	// Next is the character acting after this attack. Nil when the battle ended.
	Next *character.Character

	// Narrative holds the most recent log entries
	Narrative []string

	// Status is nil when the battle ended
	Status *Status
}

// SkipTurnOutput describes a skipped turn
type SkipTurnOutput struct {
	Skipped   *character.Character
	Next      *character.Character
	Narrative []string
	Status    *Status
}

// Status is a snapshot of the battle
type Status struct {
	Active      bool
	HeroTeam    []*character.Character
	VillainTeam []*character.Character
	Defeated    []*character.Character
	Current     *character.Character
	Narrative   []string

	// Participants counts every character on the roster
	Participants int
}

// TurnOrder is a snapshot of the acting order
type TurnOrder struct {
	Order   []*character.Character
	Current int
}

// Targets lists who a caller's character may attack
type Targets struct {
	Attacker *character.Character
	Enemies  []*character.Character
}

type service struct {
	mu            sync.Mutex
	battle        *battledomain.Battle
	resolver      *battledomain.Resolver
	eventBus      *events.Bus
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	// Roller supplies the attack d20
	Roller dice.Roller

	// Chance supplies hit draws and verb choice
	Chance dice.Source

	EventBus      *events.Bus
	UUIDGenerator uuid.Generator
}

// NewService creates a new battle service holding one idle battle
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.EventBus == nil {
		panic("event bus is required")
	}

	svc := &service{
		battle:   battledomain.New(),
		resolver: battledomain.NewResolver(cfg.Roller, cfg.Chance),
		eventBus: cfg.EventBus,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// AddCharacter creates a character and puts it on the roster
func (s *service) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}
	if n := utf8.RuneCountInString(name); n > character.MaxNameLength {
		return nil, dnderr.InvalidArgumentf("character name must be at most %d characters, got %d", character.MaxNameLength, n)
	}

	charType, err := character.ParseType(input.Type)
	if err != nil {
		return nil, err
	}

	if input.HP <= 0 {
		return nil, dnderr.InvalidArgumentf("HP must be positive, got %d", input.HP)
	}
	if input.MP <= 0 {
		return nil, dnderr.InvalidArgumentf("MP must be positive, got %d", input.MP)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := character.New(name, charType, input.HP, input.MP, input.Mental, input.Speed)
	if c.Team == character.TeamHero {
		c.OwnerID = input.OwnerID
	}

	if err := s.battle.AddParticipant(c, input.Reinforcement); err != nil {
		return nil, err
	}
	c.ID = s.uuidGenerator.New()

	log.Printf("[BattleService] Added %s %s (%s) to the %s, reinforcement=%v",
		charType.Label(), c.Name, uuid.Short(c.ID), c.Team, input.Reinforcement)

	s.emit(events.NewCharacterJoinedEvent(c.Clone(), input.Reinforcement))

	output := &AddCharacterOutput{Character: c.Clone()}
	if s.battle.Active {
		output.Status = s.statusLocked()
	}

	return output, nil
}

// RemoveCharacter takes a character off the roster by name
func (s *service) RemoveCharacter(ctx context.Context, name string) (*character.Character, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.battle.RemoveParticipant(name)
	if err != nil {
		return nil, err
	}

	log.Printf("[BattleService] Removed %s", removed.Name)
	s.emit(events.NewCharacterRemovedEvent(removed.Clone()))

	return removed.Clone(), nil
}

// StartBattle moves the battle to active
func (s *service) StartBattle(ctx context.Context) (*StartBattleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.battle.Start(); err != nil {
		return nil, err
	}

	first := s.battle.CurrentActor()
	order := cloneAll(s.battle.TurnOrder)

	log.Printf("[BattleService] Battle started with %d characters, %s acts first", len(order), first.Name)
	s.emit(events.NewBattleStartedEvent(first.Clone(), names(order)))

	return &StartBattleOutput{
		HeroTeam:    cloneAll(s.battle.TeamMembers(character.TeamHero)),
		VillainTeam: cloneAll(s.battle.TeamMembers(character.TeamVillain)),
		TurnOrder:   order,
		First:       first.Clone(),
		Status:      s.statusLocked(),
	}, nil
}

// Attack resolves an attack by the current actor against targetName.
// An empty name picks the only living enemy.
func (s *service) Attack(ctx context.Context, callerID, targetName string) (*AttackOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.battle.Active {
		return nil, dnderr.FailedPrecondition("battle has not started")
	}

	attacker := s.battle.CurrentActor()
	if attacker == nil {
		return nil, dnderr.FailedPrecondition("no character is acting")
	}

	defender, err := s.battle.ResolveTarget(attacker, targetName)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Resolve(s.battle, attacker, defender)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to resolve attack by %s", attacker.Name)
	}

	log.Printf("[BattleService] %s (caller %s) attacked %s: roll=%d swings=%d damage=%d",
		attacker.Name, callerID, defender.Name, result.Roll, result.AttackCount, result.TotalDamage)

	s.emit(events.NewAttackResolvedEvent(attacker.Clone(), defender.Clone(), result))
	if result.DefenderDefeated {
		s.emit(events.NewCharacterDefeatedEvent(defender.Clone(), attacker.Name))
	}

	output := &AttackOutput{
		Result:   result,
		Attacker: attacker.Clone(),
		Defender: defender.Clone(),
	}

	if outcome := s.battle.CheckEnd(); outcome != battledomain.ResultNone {
		output.Outcome = outcome
		output.Narrative = s.battle.Log.Recent()

		log.Printf("[BattleService] Battle over: %s", outcome)
		s.battle = battledomain.New()
		s.emit(events.NewBattleEndedEvent(outcome, false))

		return output, nil
	}

	next, err := s.battle.AdvanceTurn()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to advance turn")
	}
	s.emit(events.NewTurnAdvancedEvent(next.Clone(), attacker.Name, s.battle.CurrentTurn, false))

	output.Next = next.Clone()
	output.Narrative = s.battle.Log.Recent()
	output.Status = s.statusLocked()

	return output, nil
}

// SkipTurn passes the current actor's turn. Only the actor's owner may skip.
func (s *service) SkipTurn(ctx context.Context, callerID string) (*SkipTurnOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skipped := s.battle.CurrentActor()

	next, err := s.battle.SkipTurn(callerID)
	if err != nil {
		return nil, err
	}

	log.Printf("[BattleService] %s skipped their turn", skipped.Name)
	s.emit(events.NewTurnAdvancedEvent(next.Clone(), skipped.Name, s.battle.CurrentTurn, true))

	return &SkipTurnOutput{
		Skipped:   skipped.Clone(),
		Next:      next.Clone(),
		Narrative: s.battle.Log.Recent(),
		Status:    s.statusLocked(),
	}, nil
}

// GetStatus returns a snapshot of both teams
func (s *service) GetStatus(ctx context.Context) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statusLocked(), nil
}

// GetTurnOrder returns the acting order of an active battle
func (s *service) GetTurnOrder(ctx context.Context) (*TurnOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.battle.Active {
		return nil, dnderr.FailedPrecondition("battle has not started")
	}

	return &TurnOrder{
		Order:   cloneAll(s.battle.TurnOrder),
		Current: s.battle.CurrentTurn,
	}, nil
}

// GetTargets lists the living enemies of the first character the caller owns
func (s *service) GetTargets(ctx context.Context, callerID string) (*Targets, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.battle.CharactersByOwner(callerID)
	if len(owned) == 0 {
		return nil, dnderr.NotFound("you have no character in this battle")
	}

	return &Targets{
		Attacker: owned[0].Clone(),
		Enemies:  cloneAll(s.battle.EnemiesOf(owned[0].Team)),
	}, nil
}

// EndBattle discards the battle and starts fresh
func (s *service) EndBattle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("[BattleService] Ending battle with %d characters", len(s.battle.Participants))
	s.battle = battledomain.New()
	s.emit(events.NewBattleEndedEvent(battledomain.ResultNone, true))

	return nil
}

// statusLocked builds a snapshot. Caller must hold the lock.
func (s *service) statusLocked() *Status {
	status := &Status{
		Active:       s.battle.Active,
		HeroTeam:     cloneAll(s.battle.TeamMembers(character.TeamHero)),
		VillainTeam:  cloneAll(s.battle.TeamMembers(character.TeamVillain)),
		Defeated:     []*character.Character{},
		Narrative:    s.battle.Log.Recent(),
		Participants: len(s.battle.Participants),
	}

	for _, c := range s.battle.Participants {
		if !c.IsAlive() {
			status.Defeated = append(status.Defeated, c.Clone())
		}
	}

	if s.battle.Active {
		status.Current = s.battle.CurrentActor().Clone()
	}

	return status
}

// emit publishes an event. A failing listener never undoes a battle change.
func (s *service) emit(event events.Event) {
	if err := s.eventBus.Emit(event); err != nil {
		log.Printf("[BattleService] Event %s listener error: %v", event.GetType(), err)
	}
}

func cloneAll(chars []*character.Character) []*character.Character {
	out := make([]*character.Character, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.Clone())
	}
	return out
}

func names(chars []*character.Character) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.Name)
	}
	return out
}
