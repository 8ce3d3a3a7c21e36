package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/builders"
	battledomain "github.com/KirkDiggler/battle-bot-discord/internal/domain/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/battle-bot-discord/internal/services/battle"
	"github.com/bwmarrin/discordgo"
)

// MaxMental is the top of the mental scale shown to players
const MaxMental = 100

const battleBegins = "The battle begins..."

// CharacterEmbed announces a newly added character
func CharacterEmbed(c *character.Character, reinforcement bool) *discordgo.MessageEmbed {
	title := "Character Created"
	if reinforcement {
		title = "Reinforcements Arrive"
	}

	lines := []string{
		fmt.Sprintf("%s **%s:** %s joins the %s", c.Icon(), c.Type.Label(), c.Name, c.Team),
		fmt.Sprintf("❤️ %d HP | 💠 %d MP", c.MaxHP, c.MaxMP),
		fmt.Sprintf("🧠 %d Mental | 🏃 %d Speed", c.Mental, c.Speed),
	}

	return builders.SuccessEmbed(title, strings.Join(lines, "\n")).Build()
}

// StatusEmbed shows each team's living members, the defeated and whose turn it is
func StatusEmbed(status *battle.Status) *discordgo.MessageEmbed {
	description := strings.Join(status.Narrative, "\n")
	if description == "" {
		if status.Active {
			description = battleBegins
		} else {
			description = "Waiting for the battle to start. Use `/battle start` when both teams are ready."
		}
	}

	embed := builders.NewEmbed().
		Title("⚔️ Battle Status").
		Description(description).
		Color(builders.ColorInfo)

	if len(status.HeroTeam) > 0 {
		embed.Field("🛡️ Hero Team 🛡️", teamLines(status.HeroTeam), false)
	}
	if len(status.VillainTeam) > 0 {
		embed.Field("💀 Villain Team 💀", teamLines(status.VillainTeam), false)
	}
	if len(status.Defeated) > 0 {
		defeated := make([]string, 0, len(status.Defeated))
		for _, c := range status.Defeated {
			defeated = append(defeated, c.DisplayName())
		}
		embed.Field("☠️ Defeated", strings.Join(defeated, ", "), false)
	}

	if status.Current != nil {
		embed.Footer("Current turn: " + status.Current.DisplayName())
	}

	return embed.Build()
}

func teamLines(members []*character.Character) string {
	lines := make([]string, 0, len(members))
	for _, c := range members {
		lines = append(lines, memberLine(c))
	}
	return strings.Join(lines, "\n\n")
}

func memberLine(c *character.Character) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", c.DisplayName(), c.Type.Label())
	fmt.Fprintf(&sb, "❤️ %d/%d %s\n", c.HP, c.MaxHP, builders.StatusBar(c.HP, c.MaxHP))
	fmt.Fprintf(&sb, "💠 %d/%d %s\n", c.MP, c.MaxMP, builders.StatusBar(c.MP, c.MaxMP))
	fmt.Fprintf(&sb, "🧠 %d/%d", c.Mental, MaxMental)
	if len(c.Effects) > 0 {
		fmt.Fprintf(&sb, "\n🔮 Effects: %s", strings.Join(c.Effects, ", "))
	}
	return sb.String()
}

// StartEmbed announces the teams and the acting order
func StartEmbed(output *battle.StartBattleOutput) *discordgo.MessageEmbed {
	order := make([]string, 0, len(output.TurnOrder))
	for _, c := range output.TurnOrder {
		order = append(order, c.DisplayName())
	}

	description := fmt.Sprintf("**Hero Team:** %s\n**Villain Team:** %s",
		joinNames(output.HeroTeam), joinNames(output.VillainTeam))

	embed := builders.NewEmbed().
		Title("⚔️ The battle begins! ⚔️").
		Description(description).
		Color(builders.ColorError).
		Field("Turn order", strings.Join(order, " → "), false)

	if output.First != nil {
		embed.Footer("First turn: " + output.First.DisplayName())
	}

	return embed.Build()
}

func joinNames(chars []*character.Character) string {
	names := make([]string, 0, len(chars))
	for _, c := range chars {
		names = append(names, c.DisplayName())
	}
	return strings.Join(names, ", ")
}

// NarrativeEmbed shows the latest battle log entries
func NarrativeEmbed(narrative []string) *discordgo.MessageEmbed {
	return builders.NewEmbed().
		Title("📜 Battle Update").
		Description(strings.Join(narrative, "\n")).
		Color(builders.ColorPrimary).
		Build()
}

// VictoryEmbed announces the winning team with the final log entries
func VictoryEmbed(outcome battledomain.Result, narrative []string, at time.Time) *discordgo.MessageEmbed {
	color := builders.ColorError
	if outcome.Winner() == character.TeamHero {
		color = builders.ColorSuccess
	}

	return builders.NewEmbed().
		Title(fmt.Sprintf("🏆 %s 🏆", outcome)).
		Description(strings.Join(narrative, "\n")).
		Color(color).
		Footer("The battle has been reset. Use /battle create to start a new one.").
		Timestamp(at).
		Build()
}

// TurnOrderEmbed numbers the characters in acting order
func TurnOrderEmbed(order *battle.TurnOrder) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(order.Order))
	for i, c := range order.Order {
		lines = append(lines, fmt.Sprintf("%d. %s (Speed: %d)", i+1, c.DisplayName(), c.Speed))
	}

	embed := builders.NewEmbed().
		Title("🔄 Turn Order").
		Description(strings.Join(lines, "\n")).
		Color(builders.ColorInfo)

	if order.Current >= 0 && order.Current < len(order.Order) {
		embed.Footer(fmt.Sprintf("Current turn: %d. %s", order.Current+1, order.Order[order.Current].DisplayName()))
	}

	return embed.Build()
}

// TargetsEmbed lists the living enemies of the caller's character
func TargetsEmbed(targets *battle.Targets) *discordgo.MessageEmbed {
	embed := builders.NewEmbed().
		Title("🎯 Available Targets").
		Description(fmt.Sprintf("Enemies of %s", targets.Attacker.DisplayName())).
		Color(builders.ColorWarning)

	for _, enemy := range targets.Enemies {
		value := fmt.Sprintf("❤️ %d/%d %s\n🧠 Mental: %d/%d",
			enemy.HP, enemy.MaxHP, builders.StatusBar(enemy.HP, enemy.MaxHP), enemy.Mental, MaxMental)
		embed.Field(enemy.DisplayName(), value, true)
	}

	return embed.Build()
}

// HelpEmbed lists the commands, the type advantage chart and what each stat does
func HelpEmbed() *discordgo.MessageEmbed {
	commands := []string{
		"`/battle create` Create a character before the battle starts",
		"`/battle add` Add a reinforcement, even mid-battle",
		"`/battle remove` Remove a character by name",
		"`/battle start` Start the battle",
		"`/battle attack [target]` Attack with the character whose turn it is",
		"`/battle skip` Skip your character's turn",
		"`/battle status` Show both teams",
		"`/battle order` Show the turn order",
		"`/battle targets` List the enemies you can attack",
		"`/battle end` End the battle and start over",
	}

	chart := make([]string, 0, len(character.Types))
	for _, t := range character.Types {
		chart = append(chart, fmt.Sprintf("%s **%s** strong vs %s %s (x%.1f), weak vs %s %s (x%.1f)",
			t.Icon(), t.Label(),
			t.StrongAgainst().Icon(), t.StrongAgainst().Label(), character.StrongMultiplier,
			t.WeakAgainst().Icon(), t.WeakAgainst().Label(), character.WeakMultiplier))
	}

	stats := []string{
		"❤️ **HP** Reaching 0 knocks the character out",
		"💠 **MP** More mana means more damage. Every attack spends 10% of max MP, at least 5",
		"🧠 **Mental** Raises accuracy. Out-willing a foe by more than 30 frightens them",
		"🏃 **Speed** Acts earlier. Outpacing the target by more than 10 or 20 grants extra swings",
	}

	return builders.NewEmbed().
		Title("📖 Battle Help").
		Description(strings.Join(commands, "\n")).
		Color(builders.ColorPrimary).
		Field("⚖️ Type Advantages", strings.Join(chart, "\n"), false).
		Field("📊 Stats", strings.Join(stats, "\n"), false).
		Build()
}
