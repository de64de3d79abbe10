package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type contextKey string

const (
	responderKey contextKey = "responder"
	requestIDKey contextKey = "request_id"
)

// InteractionContext wraps a Discord interaction with the fields handlers read most
type InteractionContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate

	UserID    string
	GuildID   string
	ChannelID string
	Member    *discordgo.Member

	Context context.Context

	// command options keyed by name; "subcommand" holds the subcommand name
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

	// Guild interactions carry Member, DMs carry User
	if i.Member != nil && i.Member.User != nil {
		ic.Member = i.Member
		ic.UserID = i.Member.User.ID
	} else if i.User != nil {
		ic.UserID = i.User.ID
	}

	if i.Type == discordgo.InteractionApplicationCommand {
		ic.parseOptions(i.ApplicationCommandData().Options)
	}

	return ic
}

func (ic *InteractionContext) parseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) {
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand ||
			opt.Type == discordgo.ApplicationCommandOptionSubCommandGroup {
			ic.params["subcommand"] = opt.Name
			ic.parseOptions(opt.Options)
			continue
		}
		ic.params[opt.Name] = opt.Value
	}
}

// GetParam retrieves a parameter by name
func (ic *InteractionContext) GetParam(name string) interface{} {
	return ic.params[name]
}

// GetStringParam retrieves a string parameter or returns empty string
func (ic *InteractionContext) GetStringParam(name string) string {
	if s, ok := ic.params[name].(string); ok {
		return s
	}
	return ""
}

// GetIntParam retrieves an int parameter or returns 0.
// Discord delivers integer options as float64 in JSON.
func (ic *InteractionContext) GetIntParam(name string) int {
	switch v := ic.params[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
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
	if !ic.IsComponent() {
		return ""
	}
	return ic.Interaction.MessageComponentData().CustomID
}

// GetValues returns the selected values of a select menu interaction
func (ic *InteractionContext) GetValues() []string {
	if !ic.IsComponent() {
		return nil
	}
	return ic.Interaction.MessageComponentData().Values
}

// GetMessage returns the message a component is attached to
func (ic *InteractionContext) GetMessage() *discordgo.Message {
	if ic.Interaction == nil || ic.Interaction.Interaction == nil {
		return nil
	}
	return ic.Interaction.Message
}

// GetCommandName returns the command name for slash commands
func (ic *InteractionContext) GetCommandName() string {
	if !ic.IsCommand() {
		return ""
	}
	return ic.Interaction.ApplicationCommandData().Name
}

// GetSubcommand returns the subcommand name if present
func (ic *InteractionContext) GetSubcommand() string {
	return ic.GetStringParam("subcommand")
}

// WithValue adds a value to the context
func (ic *InteractionContext) WithValue(key, val interface{}) {
	ic.Context = context.WithValue(ic.Context, key, val)
}

// Value retrieves a value from the context
func (ic *InteractionContext) Value(key interface{}) interface{} {
	return ic.Context.Value(key)
}

// WithResponder attaches the responder handlers should reply through
func (ic *InteractionContext) WithResponder(r InteractionResponder) {
	ic.WithValue(responderKey, r)
}

// Responder returns the responder attached by the pipeline, or nil
func (ic *InteractionContext) Responder() InteractionResponder {
	r, _ := ic.Value(responderKey).(InteractionResponder)
	return r
}

// RequestID returns the ID assigned by RequestIDMiddleware, if any
func (ic *InteractionContext) RequestID() string {
	id, _ := ic.Value(requestIDKey).(string)
	return id
}

// WithRequestID stores a request ID on the context
func (ic *InteractionContext) WithRequestID(id string) {
	ic.WithValue(requestIDKey, id)
}
