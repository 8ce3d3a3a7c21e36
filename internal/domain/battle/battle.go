package battle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
	"golang.org/x/text/cases"
)

// Result is the outcome of an end of battle check
type Result string

const (
	ResultNone            Result = ""
	ResultHeroTeamWins    Result = "hero_team_wins"
	ResultVillainTeamWins Result = "villain_team_wins"
)

// Winner returns the winning team, or an empty team when nobody has won
func (r Result) Winner() character.Team {
	switch r {
	case ResultHeroTeamWins:
		return character.TeamHero
	case ResultVillainTeamWins:
		return character.TeamVillain
	default:
		return ""
	}
}

func (r Result) String() string {
	if r == ResultNone {
		return "none"
	}
	return fmt.Sprintf("%s wins!", r.Winner())
}

// Battle is the single aggregate holding the roster and turn state.
// It is not safe for concurrent use; the owning service serializes access.
type Battle struct {
	// Participants holds every character added, in insertion order. Defeated characters stay until removed.
	Participants []*character.Character

	// TurnOrder holds living participants, fastest first
	TurnOrder []*character.Character

	// CurrentTurn indexes TurnOrder
	CurrentTurn int

	Active bool

	Log *Narrative
}

// New returns an idle, empty battle
func New() *Battle {
	return &Battle{
		Participants: []*character.Character{},
		TurnOrder:    []*character.Character{},
		Log:          NewNarrative(),
	}
}

var folder = cases.Fold()

func sameName(a, b string) bool {
	return folder.String(strings.TrimSpace(a)) == folder.String(strings.TrimSpace(b))
}

// FindByName looks a participant up ignoring case
func (b *Battle) FindByName(name string) *character.Character {
	for _, c := range b.Participants {
		if sameName(c.Name, name) {
			return c
		}
	}
	return nil
}

// HasName reports whether a participant already uses the name
func (b *Battle) HasName(name string) bool {
	return b.FindByName(name) != nil
}

// TeamMembers returns the living participants of a team
func (b *Battle) TeamMembers(team character.Team) []*character.Character {
	members := []*character.Character{}
	for _, c := range b.Participants {
		if c.Team == team && c.IsAlive() {
			members = append(members, c)
		}
	}
	return members
}

// EnemiesOf returns the living participants opposing team
func (b *Battle) EnemiesOf(team character.Team) []*character.Character {
	return b.TeamMembers(team.Opponent())
}

// CharactersByOwner returns every participant the user controls, defeated ones included
func (b *Battle) CharactersByOwner(ownerID string) []*character.Character {
	owned := []*character.Character{}
	for _, c := range b.Participants {
		if c.IsOwnedBy(ownerID) {
			owned = append(owned, c)
		}
	}
	return owned
}

// AddParticipant puts a character on the roster. Only reinforcements may join an active battle.
func (b *Battle) AddParticipant(c *character.Character, reinforcement bool) error {
	if c == nil {
		return dnderr.InvalidArgument("character is required")
	}
	if b.Active && !reinforcement {
		return dnderr.FailedPrecondition("battle is in progress, add the character as a reinforcement instead")
	}
	if b.HasName(c.Name) {
		return dnderr.AlreadyExistsf("a character named '%s' already exists", c.Name)
	}

	b.Participants = append(b.Participants, c)
	b.RecomputeTurnOrder()

	if b.Active && c.IsAlive() && len(b.TeamMembers(c.Team)) == 1 {
		b.Log.Add(fmt.Sprintf("⚔️ %s joins the battle for the %s!", c.DisplayName(), c.Team))
	}

	return nil
}

// RemoveParticipant drops a character from the roster and the turn order
func (b *Battle) RemoveParticipant(name string) (*character.Character, error) {
	idx := -1
	for i, c := range b.Participants {
		if sameName(c.Name, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, dnderr.NotFoundf("character '%s' not found", name)
	}

	removed := b.Participants[idx]
	b.Participants = append(b.Participants[:idx], b.Participants[idx+1:]...)
	b.dropFromTurnOrder(removed)

	return removed, nil
}

// dropFromTurnOrder removes c from TurnOrder keeping CurrentTurn on the same actor
// when an earlier slot disappears
func (b *Battle) dropFromTurnOrder(c *character.Character) {
	for i, candidate := range b.TurnOrder {
		if candidate != c {
			continue
		}

		b.TurnOrder = append(b.TurnOrder[:i], b.TurnOrder[i+1:]...)
		if i <= b.CurrentTurn && b.CurrentTurn > 0 {
			b.CurrentTurn--
		}
		break
	}

	if len(b.TurnOrder) == 0 {
		b.CurrentTurn = 0
	}
}

// RecomputeTurnOrder rebuilds TurnOrder from living participants sorted by speed.
// Ties keep insertion order.
func (b *Battle) RecomputeTurnOrder() {
	order := make([]*character.Character, 0, len(b.Participants))
	for _, c := range b.Participants {
		if c.IsAlive() {
			order = append(order, c)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Speed > order[j].Speed
	})

	b.TurnOrder = order
	if b.CurrentTurn >= len(order) {
		b.CurrentTurn = max(0, len(order)-1)
	}
}

// Start moves the battle from idle to active
func (b *Battle) Start() error {
	if b.Active {
		return dnderr.FailedPrecondition("battle has already started")
	}
	if len(b.TeamMembers(character.TeamHero)) == 0 || len(b.TeamMembers(character.TeamVillain)) == 0 {
		return dnderr.FailedPrecondition("each team needs at least one living character").
			WithMeta("hero_team", len(b.TeamMembers(character.TeamHero))).
			WithMeta("villain_team", len(b.TeamMembers(character.TeamVillain)))
	}

	b.RecomputeTurnOrder()
	b.CurrentTurn = 0
	b.Active = true

	return nil
}

// CurrentActor returns the character whose turn it is, or nil
func (b *Battle) CurrentActor() *character.Character {
	if b.CurrentTurn < 0 || b.CurrentTurn >= len(b.TurnOrder) {
		return nil
	}
	return b.TurnOrder[b.CurrentTurn]
}

// AdvanceTurn passes the turn to the next character in order, wrapping around
func (b *Battle) AdvanceTurn() (*character.Character, error) {
	if !b.Active {
		return nil, dnderr.FailedPrecondition("battle has not started")
	}
	if len(b.TurnOrder) == 0 {
		return nil, dnderr.FailedPrecondition("no living characters left to act")
	}

	b.CurrentTurn = (b.CurrentTurn + 1) % len(b.TurnOrder)
	return b.TurnOrder[b.CurrentTurn], nil
}

// SkipTurn lets the owner of the current actor pass
func (b *Battle) SkipTurn(callerID string) (*character.Character, error) {
	if !b.Active {
		return nil, dnderr.FailedPrecondition("battle has not started")
	}

	actor := b.CurrentActor()
	if actor == nil {
		return nil, dnderr.FailedPrecondition("no character is acting")
	}
	if !actor.IsOwnedBy(callerID) {
		return nil, dnderr.PermissionDenied("only the owner of the current character can skip this turn").
			WithMeta("current", actor.Name)
	}

	b.Log.Add(fmt.Sprintf("⏭️ %s skips their turn", actor.DisplayName()))

	return b.AdvanceTurn()
}

// CheckEnd reports whether a team has been wiped out
func (b *Battle) CheckEnd() Result {
	if len(b.TeamMembers(character.TeamHero)) == 0 {
		return ResultVillainTeamWins
	}
	if len(b.TeamMembers(character.TeamVillain)) == 0 {
		return ResultHeroTeamWins
	}
	return ResultNone
}

// ResolveTarget picks the defender for an attack by the current actor.
// With no name the only living enemy is chosen; several enemies make the request ambiguous.
func (b *Battle) ResolveTarget(attacker *character.Character, targetName string) (*character.Character, error) {
	enemies := b.EnemiesOf(attacker.Team)

	if strings.TrimSpace(targetName) == "" {
		switch len(enemies) {
		case 0:
			return nil, dnderr.InvalidTarget("there are no enemies left to attack")
		case 1:
			return enemies[0], nil
		default:
			return nil, dnderr.InvalidTarget("choose a target").
				WithMeta("candidates", names(enemies))
		}
	}

	target := b.FindByName(targetName)
	if target == nil {
		return nil, dnderr.InvalidTarget(fmt.Sprintf("'%s' is not in this battle", targetName)).
			WithMeta("candidates", names(enemies))
	}
	if target.Team == attacker.Team {
		return nil, dnderr.InvalidTarget(fmt.Sprintf("%s is on your team", target.Name)).
			WithMeta("candidates", names(enemies))
	}
	if !target.IsAlive() {
		return nil, dnderr.InvalidTarget(fmt.Sprintf("%s has already been defeated", target.Name)).
			WithMeta("candidates", names(enemies))
	}

	return target, nil
}

func names(chars []*character.Character) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.Name)
	}
	return out
}
