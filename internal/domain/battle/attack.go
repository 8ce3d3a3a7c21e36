package battle

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/battle-bot-discord/internal/dice"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
)

const (
	hpEmoji   = "❤️"
	diceEmoji = "🎲"

	// mentalGap is how far apart two characters' mental stats must be before pressure kicks in
	mentalGap = 30

	minMPCost = 5
)

// Tier classifies a landed hit by the flavor roll
type Tier string

const (
	TierCritical  Tier = "critical"
	TierEffective Tier = "effective"
	TierSolid     Tier = "solid"
	TierWeak      Tier = "weak"
	TierNone      Tier = ""
)

// TierFor returns the flavor tier of a roll. Rolls of 1-4 carry no tier.
func TierFor(roll int) Tier {
	switch {
	case roll == 20:
		return TierCritical
	case roll >= 15:
		return TierEffective
	case roll >= 10:
		return TierSolid
	case roll >= 5:
		return TierWeak
	default:
		return TierNone
	}
}

// Hit is the outcome of one swing within an attack
type Hit struct {
	Missed   bool
	Damage   int
	Critical bool
	Tier     Tier
}

func (h Hit) describe() string {
	if h.Missed {
		return "💨 Missed!"
	}

	switch h.Tier {
	case TierCritical:
		return fmt.Sprintf("💥 **Critical Hit!** (%d %s)", h.Damage, hpEmoji)
	case TierEffective:
		return fmt.Sprintf("✨ An effective strike! (%d %s)", h.Damage, hpEmoji)
	case TierSolid:
		return fmt.Sprintf("⚔️ A solid hit (%d %s)", h.Damage, hpEmoji)
	case TierWeak:
		return fmt.Sprintf("🤕 A glancing blow (%d %s)", h.Damage, hpEmoji)
	default:
		return ""
	}
}

// AttackResult describes everything an attack changed
type AttackResult struct {
	AttackerName string
	DefenderName string

	Roll        int
	AttackCount int
	Hits        []Hit
	TotalDamage int
	MPSpent     int
	Verb        string

	DefenderDefeated bool
	DefenderHP       int

	// Effects lists the labels applied by mental pressure
	Effects []string

	// TypeBonus is the matchup multiplier. It is reported but does not change damage.
	TypeBonus float64

	// Narrative is the log entry written for the attack itself
	Narrative string
}

// Misses counts swings that did not land
func (r *AttackResult) Misses() int {
	misses := 0
	for _, h := range r.Hits {
		if h.Missed {
			misses++
		}
	}
	return misses
}

var attackVerbs = map[character.Type][]string{
	character.TypeHero:     {"attacks", "engages", "charges at"},
	character.TypeAntiHero: {"ambushes", "strikes", "assaults"},
	character.TypeVillain:  {"pummels", "curses", "attacks"},
	character.TypeMonster:  {"bites", "mauls", "crushes"},
}

// Resolver runs the attack formula against a battle
type Resolver struct {
	roller dice.Roller
	chance dice.Source
}

// NewResolver creates a resolver. The roller supplies the shared d20 and chance
// supplies the per swing hit draws and verb choice.
func NewResolver(roller dice.Roller, chance dice.Source) *Resolver {
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	if chance == nil {
		chance = dice.NewRandomSource()
	}

	return &Resolver{
		roller: roller,
		chance: chance,
	}
}

// AttackCount returns how many swings a speed advantage grants
func AttackCount(attackerSpeed, defenderSpeed int) int {
	switch {
	case attackerSpeed > defenderSpeed+20:
		return 3
	case attackerSpeed > defenderSpeed+10:
		return 2
	default:
		return 1
	}
}

// MPBonus returns the damage multiplier from remaining mana, between 1.0 and 1.5
func MPBonus(mp, maxMP int) float64 {
	return 1 + float64(mp)/float64(maxMP)*0.5
}

// Accuracy returns the chance a swing lands. It is not capped at 1.
func Accuracy(mental int) float64 {
	return 0.5 + float64(mental)/200
}

// MPCost returns the mana spent per attack
func MPCost(maxMP int) int {
	return max(minMPCost, int(math.Floor(float64(maxMP)*0.1)))
}

// Resolve performs an attack by attacker on defender, mutating both and the battle log.
// Nothing is changed when an error is returned.
func (r *Resolver) Resolve(b *Battle, attacker, defender *character.Character) (*AttackResult, error) {
	if b == nil || attacker == nil || defender == nil {
		return nil, dnderr.InvalidArgument("battle, attacker and defender are required")
	}
	if attacker.Team == defender.Team {
		return nil, dnderr.InvalidTarget(fmt.Sprintf("%s is on your team", defender.Name))
	}
	if !defender.IsAlive() {
		return nil, dnderr.InvalidTarget(fmt.Sprintf("%s has already been defeated", defender.Name))
	}
	if attacker.MaxMP <= 0 {
		return nil, dnderr.InvalidArgumentf("%s has no mana pool", attacker.Name)
	}

	rollResult, err := r.roller.Roll(1, 20, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll attack")
	}
	roll := rollResult.Total

	result := &AttackResult{
		AttackerName: attacker.Name,
		DefenderName: defender.Name,
		Roll:         roll,
		AttackCount:  AttackCount(attacker.Speed, defender.Speed),
		Effects:      []string{},
		TypeBonus:    attacker.AttackBonus(defender),
	}

	mpBonus := MPBonus(attacker.MP, attacker.MaxMP)
	accuracy := Accuracy(attacker.Mental)

	for i := 0; i < result.AttackCount; i++ {
		if r.chance.Float64() >= accuracy {
			result.Hits = append(result.Hits, Hit{Missed: true})
			continue
		}

		damage := int(math.Floor(float64(max(1, roll/3)) * mpBonus))
		critical := roll == 20
		if critical {
			damage *= 2
		}

		result.Hits = append(result.Hits, Hit{
			Damage:   damage,
			Critical: critical,
			Tier:     TierFor(roll),
		})
		result.TotalDamage += damage
	}

	result.MPSpent = attacker.SpendMP(MPCost(attacker.MaxMP))

	defender.TakeDamage(result.TotalDamage)
	result.DefenderHP = defender.HP
	result.DefenderDefeated = !defender.IsAlive()

	verbs := attackVerbs[attacker.Type]
	result.Verb = verbs[r.chance.Intn(len(verbs))]

	result.Narrative = r.narrate(attacker, defender, result)
	b.Log.Add(result.Narrative)

	if result.DefenderDefeated {
		b.dropFromTurnOrder(defender)
	}

	r.applyMentalPressure(b, attacker, defender, result)

	return result, nil
}

func (r *Resolver) narrate(attacker, defender *character.Character, result *AttackResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s (%s %d):", attacker.DisplayName(), result.Verb, defender.DisplayName(), diceEmoji, result.Roll)

	for _, h := range result.Hits {
		if line := h.describe(); line != "" {
			sb.WriteString("\n")
			sb.WriteString(line)
		}
	}

	if result.TotalDamage > 0 {
		fmt.Fprintf(&sb, "\nTotal damage: %d %s", result.TotalDamage, hpEmoji)
	}
	if result.DefenderDefeated {
		fmt.Fprintf(&sb, "\n💀 %s has been defeated!", defender.DisplayName())
	}

	return sb.String()
}

// applyMentalPressure marks the weaker willed side when the mental gap is large
func (r *Resolver) applyMentalPressure(b *Battle, attacker, defender *character.Character, result *AttackResult) {
	diff := attacker.Mental - defender.Mental

	switch {
	case diff > mentalGap:
		defender.AddEffect(character.EffectAfraid)
		result.Effects = append(result.Effects, character.EffectAfraid)
		b.Log.Add(fmt.Sprintf("😨 %s is shaken by the strength of their opponent's will!", defender.DisplayName()))
	case diff < -mentalGap:
		attacker.AddEffect(character.EffectHesitant)
		result.Effects = append(result.Effects, character.EffectHesitant)
		b.Log.Add(fmt.Sprintf("🤔 %s hesitates against a stronger will!", attacker.DisplayName()))
	}
}
