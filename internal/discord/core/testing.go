package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// TestInteractionContext builds an InteractionContext without a Discord session
type TestInteractionContext struct {
	*InteractionContext
}

// NewTestInteractionContext creates a test interaction context
func NewTestInteractionContext() *TestInteractionContext {
	return &TestInteractionContext{
		InteractionContext: &InteractionContext{
			Context:   context.Background(),
			UserID:    "test-user-123",
			GuildID:   "test-guild-123",
			ChannelID: "test-channel-123",
			params:    make(map[string]interface{}),
		},
	}
}

// WithParam adds an option value. Use float64 for integer options, as Discord does.
func (t *TestInteractionContext) WithParam(key string, value interface{}) *TestInteractionContext {
	t.params[key] = value
	return t
}

// WithUserID sets the user ID
func (t *TestInteractionContext) WithUserID(userID string) *TestInteractionContext {
	t.UserID = userID
	return t
}

// AsCommand simulates a slash command interaction
func (t *TestInteractionContext) AsCommand(name string, subcommand ...string) *TestInteractionContext {
	t.Interaction = &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: name,
			},
		},
	}

	if len(subcommand) > 0 {
		t.params["subcommand"] = subcommand[0]
	}

	return t
}

// AsComponent simulates a component interaction
func (t *TestInteractionContext) AsComponent(customID string) *TestInteractionContext {
	t.Interaction = &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
			},
		},
	}
	t.parseComponent(customID)
	return t
}

// MockResponder is a test implementation of InteractionResponder
type MockResponder struct {
	Responses    []*Response
	Edits        []*Response
	RespondError error
	EditError    error
	Responded    bool
}

// NewMockResponder creates a new mock responder
func NewMockResponder() *MockResponder {
	return &MockResponder{
		Responses: make([]*Response, 0),
		Edits:     make([]*Response, 0),
	}
}

func (m *MockResponder) Respond(response *Response) error {
	m.Responses = append(m.Responses, response)
	m.Responded = true
	return m.RespondError
}

func (m *MockResponder) Edit(response *Response) error {
	m.Edits = append(m.Edits, response)
	return m.EditError
}

func (m *MockResponder) HasResponded() bool {
	return m.Responded
}

// LastResponse returns the last response sent
func (m *MockResponder) LastResponse() *Response {
	if len(m.Edits) > 0 {
		return m.Edits[len(m.Edits)-1]
	}
	if len(m.Responses) > 0 {
		return m.Responses[len(m.Responses)-1]
	}
	return nil
}
