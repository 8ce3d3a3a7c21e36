package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// InteractionResponder provides an abstraction over Discord's interaction response API
type InteractionResponder interface {
	// Respond sends the initial response
	Respond(response *Response) error

	// Edit updates the initial response
	Edit(response *Response) error

	HasResponded() bool
}

// DiscordResponder implements InteractionResponder using Discord's API
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
	responded   bool
}

// NewDiscordResponder creates a new Discord responder
func NewDiscordResponder(s *discordgo.Session, i *discordgo.InteractionCreate) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends an immediate response. A response marked Update replaces the clicked message.
func (r *DiscordResponder) Respond(response *Response) error {
	if r.responded {
		return r.Edit(response)
	}

	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if response.Update && r.interaction.Type == discordgo.InteractionMessageComponent {
		responseType = discordgo.InteractionResponseUpdateMessage
	}

	err := r.session.InteractionRespond(r.interaction.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: buildResponseData(response),
	})
	if err == nil {
		r.responded = true
	}

	return err
}

// Edit updates a previous response
func (r *DiscordResponder) Edit(response *Response) error {
	if !r.responded {
		return fmt.Errorf("cannot edit before responding")
	}

	_, err := r.session.InteractionResponseEdit(r.interaction.Interaction, &discordgo.WebhookEdit{
		Content:         &response.Content,
		Embeds:          &response.Embeds,
		Components:      &response.Components,
		AllowedMentions: response.AllowedMentions,
	})
	return err
}

// HasResponded returns whether this responder has already sent a response
func (r *DiscordResponder) HasResponded() bool {
	return r.responded
}

func buildResponseData(response *Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:         response.Content,
		Embeds:          response.Embeds,
		Components:      response.Components,
		AllowedMentions: response.AllowedMentions,
	}
	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}
