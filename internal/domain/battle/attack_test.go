package battle_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/battle-bot-discord/internal/dice"
	mockdice "github.com/KirkDiggler/battle-bot-discord/internal/dice/mock"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type attackFixture struct {
	battle   *battle.Battle
	hero     *character.Character
	villain  *character.Character
	roller   *mockdice.ManualMockRoller
	source   *mockdice.SequenceSource
	resolver *battle.Resolver
}

// newAttackFixture builds a started battle with the hero acting first
func newAttackFixture(t *testing.T, hero, villain *character.Character, roll int, floats ...float64) *attackFixture {
	t.Helper()

	b := battle.New()
	require.NoError(t, b.AddParticipant(hero, false))
	require.NoError(t, b.AddParticipant(villain, false))
	require.NoError(t, b.Start())

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{roll})
	source := mockdice.NewSequenceSource(floats...)

	return &attackFixture{
		battle:   b,
		hero:     hero,
		villain:  villain,
		roller:   roller,
		source:   source,
		resolver: battle.NewResolver(roller, source),
	}
}

func TestResolve_CriticalHit(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 80, 15)
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 40, 5)
	f := newAttackFixture(t, hero, villain, 20, 0.1)

	result, err := f.resolver.Resolve(f.battle, hero, villain)

	require.NoError(t, err)
	assert.Equal(t, 20, result.Roll)
	// a gap of exactly 10 does not earn a second swing
	assert.Equal(t, 1, result.AttackCount)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, battle.Hit{Damage: 18, Critical: true, Tier: battle.TierCritical}, result.Hits[0])
	assert.Equal(t, 18, result.TotalDamage)
	assert.Equal(t, 82, villain.HP)
	assert.Equal(t, 5, result.MPSpent)
	assert.Equal(t, 45, hero.MP)
	assert.Equal(t, 1.5, result.TypeBonus)
	assert.Contains(t, result.Narrative, "💥 **Critical Hit!** (18 ❤️)")
	assert.Contains(t, result.Narrative, "Total damage: 18 ❤️")
}

func TestResolve_SpeedGrantsExtraSwingsSharingTheRoll(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 80, 16)
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 40, 5)
	f := newAttackFixture(t, hero, villain, 20, 0.1, 0.2)

	result, err := f.resolver.Resolve(f.battle, hero, villain)

	require.NoError(t, err)
	assert.Equal(t, 2, result.AttackCount)
	assert.Equal(t, 36, result.TotalDamage)
	assert.Equal(t, 64, villain.HP)
	assert.Equal(t, 2, f.source.FloatCalls())
	for _, h := range result.Hits {
		assert.Equal(t, 18, h.Damage)
	}
}

func TestAttackCount(t *testing.T) {
	tests := []struct {
		attacker, defender, want int
	}{
		{10, 10, 1},
		{20, 10, 1},
		{21, 10, 2},
		{30, 10, 2},
		{31, 10, 3},
		{100, 10, 3},
		{5, 50, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, battle.AttackCount(tt.attacker, tt.defender), "%d vs %d", tt.attacker, tt.defender)
	}
}

func TestFormulas(t *testing.T) {
	assert.Equal(t, 1.5, battle.MPBonus(50, 50))
	assert.Equal(t, 1.0, battle.MPBonus(0, 50))
	assert.Equal(t, 1.25, battle.MPBonus(25, 50))

	assert.Equal(t, 0.5, battle.Accuracy(0))
	assert.Equal(t, 1.0, battle.Accuracy(100))
	assert.Equal(t, 1.1, battle.Accuracy(120))

	assert.Equal(t, 5, battle.MPCost(30))
	assert.Equal(t, 5, battle.MPCost(59))
	assert.Equal(t, 20, battle.MPCost(200))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		roll int
		want battle.Tier
	}{
		{20, battle.TierCritical},
		{19, battle.TierEffective},
		{15, battle.TierEffective},
		{14, battle.TierSolid},
		{10, battle.TierSolid},
		{9, battle.TierWeak},
		{5, battle.TierWeak},
		{4, battle.TierNone},
		{1, battle.TierNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, battle.TierFor(tt.roll), "roll %d", tt.roll)
	}
}

func TestResolve_DamageByRoll(t *testing.T) {
	tests := []struct {
		name       string
		roll       int
		mp         int
		wantDamage int
		wantText   string
	}{
		{name: "effective", roll: 15, mp: 50, wantDamage: 7, wantText: "✨"},
		{name: "solid", roll: 10, mp: 50, wantDamage: 4, wantText: "⚔️ A solid hit"},
		{name: "weak", roll: 5, mp: 50, wantDamage: 1, wantText: "🤕"},
		{name: "low roll still hurts", roll: 2, mp: 0, wantDamage: 1},
		{name: "empty mana gives no bonus", roll: 18, mp: 0, wantDamage: 6, wantText: "✨"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero := character.New("Arthur", character.TypeHero, 100, 50, 50, 10)
			hero.MP = tt.mp
			villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)
			f := newAttackFixture(t, hero, villain, tt.roll, 0)

			result, err := f.resolver.Resolve(f.battle, hero, villain)

			require.NoError(t, err)
			assert.Equal(t, tt.wantDamage, result.TotalDamage)
			assert.Equal(t, 100-tt.wantDamage, villain.HP)
			if tt.wantText != "" {
				assert.Contains(t, result.Narrative, tt.wantText)
			} else {
				assert.Equal(t, battle.TierNone, result.Hits[0].Tier)
				assert.NotContains(t, result.Narrative, "❤️)")
			}
		})
	}
}

func TestResolve_MissStillCostsMana(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 80, 10)
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 70, 10)
	// accuracy is 0.9, a draw equal to it misses
	f := newAttackFixture(t, hero, villain, 17, 0.9)

	result, err := f.resolver.Resolve(f.battle, hero, villain)

	require.NoError(t, err)
	assert.True(t, result.Hits[0].Missed)
	assert.Equal(t, 1, result.Misses())
	assert.Equal(t, 0, result.TotalDamage)
	assert.Equal(t, 100, villain.HP)
	assert.Equal(t, 45, hero.MP)
	assert.Contains(t, result.Narrative, "💨 Missed!")
	assert.NotContains(t, result.Narrative, "Total damage")
}

func TestResolve_HighMentalNeverMisses(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 120, 10)
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 100, 10)
	f := newAttackFixture(t, hero, villain, 12, 0.999)

	result, err := f.resolver.Resolve(f.battle, hero, villain)

	require.NoError(t, err)
	assert.Zero(t, result.Misses())
}

func TestResolve_ManaClampsAtZero(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 50, 10)
	hero.MP = 3
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)
	f := newAttackFixture(t, hero, villain, 12, 0)

	result, err := f.resolver.Resolve(f.battle, hero, villain)

	require.NoError(t, err)
	assert.Equal(t, 3, result.MPSpent)
	assert.Equal(t, 0, hero.MP)
}

func TestResolve_MentalPressure(t *testing.T) {
	t.Run("defender becomes afraid", func(t *testing.T) {
		hero := character.New("Arthur", character.TypeHero, 100, 50, 90, 10)
		villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)
		f := newAttackFixture(t, hero, villain, 12, 0)

		result, err := f.resolver.Resolve(f.battle, hero, villain)

		require.NoError(t, err)
		assert.Equal(t, []string{character.EffectAfraid}, villain.Effects)
		assert.Empty(t, hero.Effects)
		assert.Equal(t, []string{character.EffectAfraid}, result.Effects)
		recent := f.battle.Log.Recent()
		assert.Contains(t, recent[len(recent)-1], "😨 👿 Zorg is shaken")
	})

	t.Run("attacker hesitates", func(t *testing.T) {
		hero := character.New("Arthur", character.TypeHero, 100, 50, 10, 10)
		villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)
		f := newAttackFixture(t, hero, villain, 12, 0)

		_, err := f.resolver.Resolve(f.battle, hero, villain)

		require.NoError(t, err)
		assert.Equal(t, []string{character.EffectHesitant}, hero.Effects)
		assert.Empty(t, villain.Effects)
		recent := f.battle.Log.Recent()
		assert.Contains(t, recent[len(recent)-1], "🤔 🦸 Arthur hesitates")
	})

	t.Run("gap of exactly thirty does nothing", func(t *testing.T) {
		hero := character.New("Arthur", character.TypeHero, 100, 50, 80, 10)
		villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)
		f := newAttackFixture(t, hero, villain, 12, 0)

		result, err := f.resolver.Resolve(f.battle, hero, villain)

		require.NoError(t, err)
		assert.Empty(t, result.Effects)
		assert.Equal(t, 1, f.battle.Log.Len())
	})
}

func TestResolve_DefeatLeavesTurnOrder(t *testing.T) {
	b := battle.New()
	villain := character.New("Zorg", character.TypeVillain, 5, 30, 50, 30)
	hero := character.New("Arthur", character.TypeHero, 100, 50, 50, 20)
	grom := character.New("Grom", character.TypeMonster, 50, 30, 50, 10)
	require.NoError(t, b.AddParticipant(villain, false))
	require.NoError(t, b.AddParticipant(hero, false))
	require.NoError(t, b.AddParticipant(grom, false))
	require.NoError(t, b.Start())

	// order is Zorg, Arthur, Grom and Arthur is acting
	_, err := b.AdvanceTurn()
	require.NoError(t, err)

	roller := mockdice.NewManualMockRoller()
	roller.SetNextRoll(20)
	resolver := battle.NewResolver(roller, mockdice.NewSequenceSource(0))

	result, err := resolver.Resolve(b, hero, villain)

	require.NoError(t, err)
	assert.True(t, result.DefenderDefeated)
	assert.Equal(t, 0, villain.HP)
	assert.Contains(t, result.Narrative, "💀 👿 Zorg has been defeated!")
	require.Len(t, b.TurnOrder, 2)
	assert.Same(t, hero, b.CurrentActor())
	assert.Len(t, b.Participants, 3)

	next, err := b.AdvanceTurn()
	require.NoError(t, err)
	assert.Same(t, grom, next)
	assert.Equal(t, battle.ResultNone, b.CheckEnd())
}

func TestResolve_VerbFromSource(t *testing.T) {
	tests := []struct {
		attacker character.Type
		defender character.Type
		pick     int
		want     string
	}{
		{character.TypeHero, character.TypeMonster, 2, "charges at"},
		{character.TypeAntiHero, character.TypeVillain, 0, "ambushes"},
		{character.TypeVillain, character.TypeHero, 1, "curses"},
		{character.TypeMonster, character.TypeAntiHero, 1, "mauls"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			a := character.New("A", tt.attacker, 100, 50, 50, 10)
			d := character.New("D", tt.defender, 100, 50, 50, 10)
			f := newAttackFixture(t, a, d, 10, 0)
			f.source.WithInts(tt.pick)

			result, err := f.resolver.Resolve(f.battle, a, d)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Verb)
			assert.Contains(t, result.Narrative, tt.want)
		})
	}
}

func TestResolve_RejectsWithoutMutation(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 50, 10)
	robin := character.New("Robin", character.TypeAntiHero, 100, 50, 50, 10)
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)

	b := battle.New()
	require.NoError(t, b.AddParticipant(hero, false))
	require.NoError(t, b.AddParticipant(robin, false))
	require.NoError(t, b.AddParticipant(villain, false))

	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	resolver := battle.NewResolver(roller, mockdice.NewSequenceSource(0))

	_, err := resolver.Resolve(b, hero, robin)
	assert.True(t, dnderr.IsInvalidTarget(err))

	villain.HP = 0
	_, err = resolver.Resolve(b, hero, villain)
	assert.True(t, dnderr.IsInvalidTarget(err))
	villain.HP = 100

	roller.EXPECT().Roll(1, 20, 0).Return(nil, errors.New("dice jammed"))
	_, err = resolver.Resolve(b, hero, villain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dice jammed")

	assert.Equal(t, 50, hero.MP)
	assert.Equal(t, 100, villain.HP)
	assert.True(t, b.Log.Empty())
}

func TestResolve_UsesRollerTotal(t *testing.T) {
	hero := character.New("Arthur", character.TypeHero, 100, 50, 50, 10)
	villain := character.New("Zorg", character.TypeVillain, 100, 30, 50, 10)

	b := battle.New()
	require.NoError(t, b.AddParticipant(hero, false))
	require.NoError(t, b.AddParticipant(villain, false))
	require.NoError(t, b.Start())

	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	roller.EXPECT().Roll(1, 20, 0).Return(dice.NewRollResult([]int{12}, 20, 0), nil)

	result, err := battle.NewResolver(roller, mockdice.NewSequenceSource(0)).Resolve(b, hero, villain)

	require.NoError(t, err)
	assert.Equal(t, 12, result.Roll)
	assert.Equal(t, 6, result.TotalDamage)
}
