package character

import (
	"strings"

	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
	"golang.org/x/text/cases"
)

// Type is the archetype of a character. It decides the team and the flavor text.
type Type string

const (
	TypeHero     Type = "hero"
	TypeAntiHero Type = "anti_hero"
	TypeVillain  Type = "villain"
	TypeMonster  Type = "monster"
)

// Types lists every character type in display order
var Types = []Type{TypeHero, TypeAntiHero, TypeVillain, TypeMonster}

// Team is one of the two opposing sides of a battle
type Team string

const (
	TeamHero    Team = "Hero Team"
	TeamVillain Team = "Villain Team"
)

// String returns the display name of the team
func (t Team) String() string {
	return string(t)
}

// Opponent returns the other team
func (t Team) Opponent() Team {
	if t == TeamHero {
		return TeamVillain
	}
	return TeamHero
}

var typeLabels = map[Type]string{
	TypeHero:     "Hero",
	TypeAntiHero: "Anti-Hero",
	TypeVillain:  "Villain",
	TypeMonster:  "Monster",
}

var typeIcons = map[Type]string{
	TypeHero:     "🦸",
	TypeAntiHero: "🦹",
	TypeVillain:  "👿",
	TypeMonster:  "👹",
}

// labelTypes maps every accepted input label to its type. Keys are case folded.
var labelTypes = map[string]Type{
	"hero":      TypeHero,
	"anti-hero": TypeAntiHero,
	"antihero":  TypeAntiHero,
	"anti_hero": TypeAntiHero,
	"villain":   TypeVillain,
	"monster":   TypeMonster,

	"ฮีโร่":        TypeHero,
	"ผู้ไม่หวังดี": TypeAntiHero,
	"วายร้าย":      TypeVillain,
	"สัตว์ประหลาด": TypeMonster,
}

// ParseType resolves a user supplied label into a Type
func ParseType(label string) (Type, error) {
	key := cases.Fold().String(strings.TrimSpace(label))
	if t, ok := labelTypes[key]; ok {
		return t, nil
	}

	return "", dnderr.InvalidArgumentf("unknown character type '%s'", label).
		WithMeta("valid_types", TypeLabels())
}

// TypeLabels returns the display labels of all types
func TypeLabels() []string {
	labels := make([]string, 0, len(Types))
	for _, t := range Types {
		labels = append(labels, t.Label())
	}
	return labels
}

// IsValid reports whether t is one of the known types
func (t Type) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the human readable name of the type
func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t Type) String() string {
	return t.Label()
}

// Icon returns the emoji shown next to characters of this type
func (t Type) Icon() string {
	if icon, ok := typeIcons[t]; ok {
		return icon
	}
	return "👤"
}

// Team returns the side characters of this type fight for
func (t Type) Team() Team {
	switch t {
	case TypeHero, TypeAntiHero:
		return TeamHero
	default:
		return TeamVillain
	}
}

type matchup struct {
	strongAgainst Type
	weakAgainst   Type
}

// matchups is a fixed lookup table. It is not symmetric.
var matchups = map[Type]matchup{
	TypeHero:     {strongAgainst: TypeVillain, weakAgainst: TypeAntiHero},
	TypeAntiHero: {strongAgainst: TypeHero, weakAgainst: TypeMonster},
	TypeVillain:  {strongAgainst: TypeAntiHero, weakAgainst: TypeHero},
	TypeMonster:  {strongAgainst: TypeAntiHero, weakAgainst: TypeVillain},
}

const (
	StrongMultiplier  = 1.5
	WeakMultiplier    = 0.7
	NeutralMultiplier = 1.0
)

// Advantage returns the attack multiplier of attacker type a against defender type d
func Advantage(a, d Type) float64 {
	m, ok := matchups[a]
	if !ok {
		return NeutralMultiplier
	}

	switch d {
	case m.strongAgainst:
		return StrongMultiplier
	case m.weakAgainst:
		return WeakMultiplier
	default:
		return NeutralMultiplier
	}
}

// StrongAgainst returns the type t deals bonus damage to
func (t Type) StrongAgainst() Type {
	return matchups[t].strongAgainst
}

// WeakAgainst returns the type t deals reduced damage to
func (t Type) WeakAgainst() Type {
	return matchups[t].weakAgainst
}
