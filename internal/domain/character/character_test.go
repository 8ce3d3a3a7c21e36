package character_test

import (
	"testing"

	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := character.New("Arthur", character.TypeAntiHero, 120, 40, 70, 12)

	assert.Equal(t, "Arthur", c.Name)
	assert.Equal(t, 120, c.HP)
	assert.Equal(t, 120, c.MaxHP)
	assert.Equal(t, 40, c.MP)
	assert.Equal(t, 40, c.MaxMP)
	assert.Equal(t, character.TeamHero, c.Team)
	assert.Empty(t, c.Effects)
	assert.Empty(t, c.OwnerID)
	assert.True(t, c.IsAlive())
}

func TestType_Team(t *testing.T) {
	assert.Equal(t, character.TeamHero, character.TypeHero.Team())
	assert.Equal(t, character.TeamHero, character.TypeAntiHero.Team())
	assert.Equal(t, character.TeamVillain, character.TypeVillain.Team())
	assert.Equal(t, character.TeamVillain, character.TypeMonster.Team())
	assert.Equal(t, character.TeamVillain, character.TeamHero.Opponent())
}

func TestAttackBonus(t *testing.T) {
	tests := []struct {
		attacker character.Type
		defender character.Type
		want     float64
	}{
		{character.TypeHero, character.TypeVillain, 1.5},
		{character.TypeHero, character.TypeAntiHero, 0.7},
		{character.TypeHero, character.TypeMonster, 1.0},
		{character.TypeAntiHero, character.TypeHero, 1.5},
		{character.TypeAntiHero, character.TypeMonster, 0.7},
		{character.TypeAntiHero, character.TypeVillain, 1.0},
		{character.TypeVillain, character.TypeAntiHero, 1.5},
		{character.TypeVillain, character.TypeHero, 0.7},
		{character.TypeVillain, character.TypeMonster, 1.0},
		{character.TypeMonster, character.TypeAntiHero, 1.5},
		{character.TypeMonster, character.TypeVillain, 0.7},
		{character.TypeMonster, character.TypeHero, 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.attacker)+"_vs_"+string(tt.defender), func(t *testing.T) {
			a := character.New("a", tt.attacker, 10, 10, 50, 10)
			d := character.New("d", tt.defender, 10, 10, 50, 10)
			assert.Equal(t, tt.want, a.AttackBonus(d))
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		label string
		want  character.Type
	}{
		{"hero", character.TypeHero},
		{"HERO", character.TypeHero},
		{" Villain ", character.TypeVillain},
		{"anti-hero", character.TypeAntiHero},
		{"AntiHero", character.TypeAntiHero},
		{"anti_hero", character.TypeAntiHero},
		{"monster", character.TypeMonster},
		{"ฮีโร่", character.TypeHero},
		{"ผู้ไม่หวังดี", character.TypeAntiHero},
		{"วายร้าย", character.TypeVillain},
		{"สัตว์ประหลาด", character.TypeMonster},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := character.ParseType(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown label", func(t *testing.T) {
		_, err := character.ParseType("dragon")
		require.Error(t, err)
		assert.True(t, dnderr.IsInvalidArgument(err))
		assert.Equal(t, character.TypeLabels(), dnderr.GetMeta(err)["valid_types"])
	})
}

func TestTakeDamage_Clamps(t *testing.T) {
	c := character.New("Orc", character.TypeMonster, 10, 10, 50, 5)

	assert.Equal(t, 4, c.TakeDamage(4))
	assert.Equal(t, 6, c.HP)

	assert.Equal(t, 6, c.TakeDamage(50))
	assert.Equal(t, 0, c.HP)
	assert.False(t, c.IsAlive())

	assert.Equal(t, 0, c.TakeDamage(-3))
	assert.Equal(t, 0, c.HP)
}

func TestSpendMP_Clamps(t *testing.T) {
	c := character.New("Mage", character.TypeHero, 10, 8, 50, 5)

	assert.Equal(t, 5, c.SpendMP(5))
	assert.Equal(t, 3, c.SpendMP(5))
	assert.Equal(t, 0, c.MP)
}

func TestEffectsAndOwnership(t *testing.T) {
	c := character.New("Arthur", character.TypeHero, 10, 10, 50, 5)
	c.AddEffect(character.EffectAfraid)
	c.AddEffect(character.EffectAfraid)

	assert.Equal(t, []string{"Afraid", "Afraid"}, c.Effects)
	assert.True(t, c.HasEffect(character.EffectAfraid))
	assert.False(t, c.HasEffect(character.EffectHesitant))

	assert.False(t, c.IsOwnedBy(""))
	c.OwnerID = "42"
	assert.True(t, c.IsOwnedBy("42"))
	assert.False(t, c.IsOwnedBy("7"))
}

func TestClone_IsIndependent(t *testing.T) {
	c := character.New("Arthur", character.TypeHero, 10, 10, 50, 5)
	c.AddEffect(character.EffectAfraid)

	clone := c.Clone()
	clone.TakeDamage(5)
	clone.AddEffect(character.EffectHesitant)

	assert.Equal(t, 10, c.HP)
	assert.Equal(t, []string{"Afraid"}, c.Effects)
	assert.Equal(t, "🦸 Arthur", clone.DisplayName())
}
