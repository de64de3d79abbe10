package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// TestInteractionContext builds InteractionContexts for tests without a live session
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

// WithParam adds a command option
func (t *TestInteractionContext) WithParam(key string, value interface{}) *TestInteractionContext {
	t.params[key] = value
	return t
}

// WithUserID sets the user ID
func (t *TestInteractionContext) WithUserID(userID string) *TestInteractionContext {
	t.UserID = userID
	return t
}

// WithResponder attaches a responder, usually a MockResponder
func (t *TestInteractionContext) WithResponder(r InteractionResponder) *TestInteractionContext {
	t.InteractionContext.WithResponder(r)
	return t
}

// AsCommand simulates a command interaction
func (t *TestInteractionContext) AsCommand(name string, subcommand ...string) *TestInteractionContext {
	t.Interaction = &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   t.GuildID,
			ChannelID: t.ChannelID,
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

// AsComponent simulates a component interaction on a message
func (t *TestInteractionContext) AsComponent(customID string, values ...string) *TestInteractionContext {
	t.Interaction = &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   t.GuildID,
			ChannelID: t.ChannelID,
			Message: &discordgo.Message{
				ID:        "test-message-123",
				ChannelID: t.ChannelID,
			},
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   values,
			},
		},
	}
	return t
}

// WithMessageComponents sets the components of the message a component interaction is on
func (t *TestInteractionContext) WithMessageComponents(components ...discordgo.MessageComponent) *TestInteractionContext {
	if t.Interaction != nil && t.Interaction.Message != nil {
		t.Interaction.Message.Components = components
	}
	return t
}

// MockResponder records responses instead of calling Discord
type MockResponder struct {
	Responses    []*Response
	Deletes      int
	RespondError error
	DeleteError  error
	Responded    bool
}

// NewMockResponder creates a new mock responder
func NewMockResponder() *MockResponder {
	return &MockResponder{
		Responses: make([]*Response, 0),
	}
}

func (m *MockResponder) Respond(response *Response) error {
	m.Responses = append(m.Responses, response)
	if m.RespondError != nil {
		return m.RespondError
	}
	m.Responded = true
	return nil
}

func (m *MockResponder) DeleteMessage() error {
	m.Deletes++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.Responded = true
	return nil
}

func (m *MockResponder) HasResponded() bool {
	return m.Responded
}

// LastResponse returns the last response sent
func (m *MockResponder) LastResponse() *Response {
	if len(m.Responses) == 0 {
		return nil
	}
	return m.Responses[len(m.Responses)-1]
}
