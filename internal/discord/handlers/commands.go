package handlers

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	"github.com/bwmarrin/discordgo"
)

// CommandName is the slash command and custom ID domain of the bot
const CommandName = "battle"

// Subcommands of /battle
const (
	SubcommandCreate  = "create"
	SubcommandAdd     = "add"
	SubcommandRemove  = "remove"
	SubcommandStart   = "start"
	SubcommandAttack  = "attack"
	SubcommandSkip    = "skip"
	SubcommandStatus  = "status"
	SubcommandOrder   = "order"
	SubcommandTargets = "targets"
	SubcommandEnd     = "end"
	SubcommandHelp    = "help"
)

// Option names
const (
	OptionType   = "type"
	OptionName   = "name"
	OptionHP     = "hp"
	OptionMP     = "mp"
	OptionMental = "mental"
	OptionSpeed  = "speed"
	OptionTarget = "target"
)

// CommandRegistrar is the part of a Discord session that installs slash commands
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces the application's commands with Commands().
// An empty guildID registers them globally.
func RegisterCommands(registrar CommandRegistrar, appID, guildID string) error {
	created, err := registrar.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	for _, cmd := range created {
		log.Printf("Registered command: %s", cmd.Name)
	}
	return nil
}

// Commands returns the slash command definitions
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Run a team battle",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        SubcommandCreate,
					Description: "Create a character before the battle starts",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     characterOptions(),
				},
				{
					Name:        SubcommandAdd,
					Description: "Add a character, joining a battle in progress",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     characterOptions(),
				},
				{
					Name:        SubcommandRemove,
					Description: "Remove a character from the battle",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        OptionName,
							Description: "Name of the character to remove",
							Required:    true,
						},
					},
				},
				{
					Name:        SubcommandStart,
					Description: "Start the battle",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubcommandAttack,
					Description: "Attack with the character whose turn it is",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        OptionTarget,
							Description: "Enemy to attack (optional when only one is left)",
							Required:    false,
						},
					},
				},
				{
					Name:        SubcommandSkip,
					Description: "Skip your character's turn",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubcommandStatus,
					Description: "Show both teams",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubcommandOrder,
					Description: "Show the turn order",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubcommandTargets,
					Description: "List the enemies your character can attack",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubcommandEnd,
					Description: "End the battle and start over",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubcommandHelp,
					Description: "Explain the commands and type advantages",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}
}

func characterOptions() []*discordgo.ApplicationCommandOption {
	minPositive := 1.0
	minZero := 0.0
	maxMental := float64(MaxMental)

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(character.Types))
	for _, t := range character.Types {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  t.Icon() + " " + t.Label(),
			Value: string(t),
		})
	}

	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        OptionType,
			Description: "Character type",
			Required:    true,
			Choices:     choices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        OptionName,
			Description: "Character name",
			Required:    true,
			MaxLength:   character.MaxNameLength,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        OptionHP,
			Description: "Hit points",
			Required:    true,
			MinValue:    &minPositive,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        OptionMP,
			Description: "Mana points",
			Required:    true,
			MinValue:    &minPositive,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        OptionMental,
			Description: "Mental strength, 0 to 100",
			Required:    true,
			MinValue:    &minZero,
			MaxValue:    maxMental,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        OptionSpeed,
			Description: "Speed",
			Required:    true,
			MinValue:    &minZero,
		},
	}
}
