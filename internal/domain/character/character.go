package character

import (
	"fmt"
)

// Effect labels applied by the mental pressure rule. They are display only.
const (
	EffectAfraid   = "Afraid"
	EffectHesitant = "Hesitant"
)

// MaxNameLength caps names, in characters, so they fit in button labels and custom IDs
const MaxNameLength = 32

// Character is a combatant in a battle
type Character struct {
	ID      string
	Name    string
	Type    Type
	MaxHP   int
	HP      int
	MaxMP   int
	MP      int
	Mental  int
	Speed   int
	Team    Team
	Effects []string

	// OwnerID is the Discord user allowed to act for this character. Empty means nobody.
	OwnerID string
}

// New creates a character at full health and mana. Stats are trusted as given.
func New(name string, charType Type, hp, mp, mental, speed int) *Character {
	return &Character{
		Name:    name,
		Type:    charType,
		MaxHP:   hp,
		HP:      hp,
		MaxMP:   mp,
		MP:      mp,
		Mental:  mental,
		Speed:   speed,
		Team:    charType.Team(),
		Effects: []string{},
	}
}

// AttackBonus returns the type matchup multiplier of c attacking target
func (c *Character) AttackBonus(target *Character) float64 {
	if target == nil {
		return NeutralMultiplier
	}
	return Advantage(c.Type, target.Type)
}

// TakeDamage lowers HP without going below zero and returns the amount applied
func (c *Character) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > c.HP {
		amount = c.HP
	}
	c.HP -= amount
	return amount
}

// SpendMP lowers MP without going below zero and returns the amount spent
func (c *Character) SpendMP(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > c.MP {
		amount = c.MP
	}
	c.MP -= amount
	return amount
}

// IsAlive reports whether the character can still act and be targeted
func (c *Character) IsAlive() bool {
	return c.HP > 0
}

// AddEffect appends a status label. Effects are never removed.
func (c *Character) AddEffect(label string) {
	c.Effects = append(c.Effects, label)
}

// HasEffect reports whether the label was ever applied
func (c *Character) HasEffect(label string) bool {
	for _, e := range c.Effects {
		if e == label {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether userID may act for this character
func (c *Character) IsOwnedBy(userID string) bool {
	return c.OwnerID != "" && c.OwnerID == userID
}

// Icon returns the type emoji
func (c *Character) Icon() string {
	return c.Type.Icon()
}

// DisplayName returns the icon and name, the form used in narrative lines
func (c *Character) DisplayName() string {
	return fmt.Sprintf("%s %s", c.Icon(), c.Name)
}

func (c *Character) String() string {
	return fmt.Sprintf("%s (%s) HP %d/%d MP %d/%d", c.Name, c.Type.Label(), c.HP, c.MaxHP, c.MP, c.MaxMP)
}

// Clone returns a deep copy safe to hand to callers outside the battle lock
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Effects = append([]string{}, c.Effects...)
	return &clone
}
