package core

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// InteractionContext wraps a Discord interaction with the values handlers need
type InteractionContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate

	UserID    string
	GuildID   string
	ChannelID string
	Member    *discordgo.Member

	// Context carries cancellation and the trace span
	Context context.Context

	params map[string]interface{}
}

// NewInteractionContext creates a new InteractionContext from a Discord interaction
func NewInteractionContext(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) *InteractionContext {
	ic := &InteractionContext{
		Session:     s,
		Interaction: i,
		Context:     ctx,
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		params:      make(map[string]interface{}),
	}

	if i.Member != nil && i.Member.User != nil {
		ic.Member = i.Member
		ic.UserID = i.Member.User.ID
	} else if i.User != nil {
		ic.UserID = i.User.ID
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		ic.parseOptions(i.ApplicationCommandData().Options)
	case discordgo.InteractionMessageComponent:
		ic.parseComponent(i.MessageComponentData().CustomID)
	}

	return ic
}

// parseOptions flattens subcommands and their options into params
func (ic *InteractionContext) parseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) {
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			ic.params["subcommand"] = opt.Name
			ic.parseOptions(opt.Options)
			continue
		}
		ic.params[opt.Name] = opt.Value
	}
}

func (ic *InteractionContext) parseComponent(customID string) {
	ic.params["custom_id"] = customID

	parsed, err := ParseCustomID(customID)
	if err != nil {
		return
	}
	ic.params["component_action"] = parsed.Action
	ic.params["component_target"] = parsed.Target
}

// GetStringParam retrieves a trimmed string parameter or returns empty string
func (ic *InteractionContext) GetStringParam(name string) string {
	if val, ok := ic.params[name]; ok {
		if strVal, ok := val.(string); ok {
			return strings.TrimSpace(strVal)
		}
	}
	return ""
}

// GetIntParam retrieves an int parameter or returns 0.
// Discord delivers integer options as float64.
func (ic *InteractionContext) GetIntParam(name string) int {
	if val, ok := ic.params[name]; ok {
		switch v := val.(type) {
		case float64:
			return int(v)
		case int:
			return v
		case int64:
			return int(v)
		}
	}
	return 0
}

// IsCommand checks if this is a slash command interaction
func (ic *InteractionContext) IsCommand() bool {
	return ic.Interaction != nil && ic.Interaction.Type == discordgo.InteractionApplicationCommand
}

// IsComponent checks if this is a message component interaction
func (ic *InteractionContext) IsComponent() bool {
	return ic.Interaction != nil && ic.Interaction.Type == discordgo.InteractionMessageComponent
}

// GetCustomID returns the custom ID for component interactions
func (ic *InteractionContext) GetCustomID() string {
	return ic.GetStringParam("custom_id")
}

// GetCommandName returns the command name for slash commands
func (ic *InteractionContext) GetCommandName() string {
	if ic.IsCommand() {
		return ic.Interaction.ApplicationCommandData().Name
	}
	return ""
}

// GetSubcommand returns the subcommand name if present
func (ic *InteractionContext) GetSubcommand() string {
	return ic.GetStringParam("subcommand")
}

// Route describes the interaction for logs and spans, e.g. "battle/attack" or "battle:attack"
func (ic *InteractionContext) Route() string {
	if ic.IsCommand() {
		route := ic.GetCommandName()
		if sub := ic.GetSubcommand(); sub != "" {
			route += "/" + sub
		}
		return route
	}
	if ic.IsComponent() {
		if parsed, err := ParseCustomID(ic.GetCustomID()); err == nil {
			return parsed.Domain + ":" + parsed.Action
		}
		return ic.GetCustomID()
	}
	return "unknown"
}
