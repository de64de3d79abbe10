package core

import (
	"github.com/bwmarrin/discordgo"
)

// Handler defines the interface for all interaction handlers
type Handler interface {
	// CanHandle determines if this handler should process the interaction
	CanHandle(ctx *InteractionContext) bool

	// Handle processes the interaction and returns a result
	Handle(ctx *InteractionContext) (*HandlerResult, error)
}

// HandlerFunc allows functions to implement the Handler interface
type HandlerFunc func(ctx *InteractionContext) (*HandlerResult, error)

// CanHandle for HandlerFunc always returns true
func (f HandlerFunc) CanHandle(ctx *InteractionContext) bool {
	return true
}

// Handle calls the function
func (f HandlerFunc) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	return f(ctx)
}

// HandlerResult is what a handler hands back to the pipeline.
// A nil Response means the handler already replied through the responder.
type HandlerResult struct {
	Response *Response

	StopPropagation bool
}

// Handled is the result for handlers that replied on their own
func Handled() *HandlerResult {
	return &HandlerResult{StopPropagation: true}
}

// Response represents a Discord-agnostic response
type Response struct {
	Content string

	Embeds []*discordgo.MessageEmbed

	Components []discordgo.MessageComponent

	// Ephemeral responses are only visible to the invoking user
	Ephemeral bool

	// Update edits the message the component is attached to instead of posting a new one
	Update bool

	AllowedMentions *discordgo.MessageAllowedMentions
}

// NewResponse creates a new response with the given content
func NewResponse(content string) *Response {
	return &Response{
		Content: content,
	}
}

// NewEphemeralResponse creates a new ephemeral response
func NewEphemeralResponse(content string) *Response {
	return &Response{
		Content:   content,
		Ephemeral: true,
	}
}

// NewEmbedResponse creates a response with an embed
func NewEmbedResponse(embed *discordgo.MessageEmbed) *Response {
	return &Response{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

// WithComponents sets the components of the response
func (r *Response) WithComponents(components ...discordgo.MessageComponent) *Response {
	r.Components = components
	return r
}

// WithEmbeds sets the embeds of the response
func (r *Response) WithEmbeds(embeds ...*discordgo.MessageEmbed) *Response {
	r.Embeds = embeds
	return r
}

// AsEphemeral sets the response to be ephemeral
func (r *Response) AsEphemeral() *Response {
	r.Ephemeral = true
	return r
}

// AsUpdate turns the response into an edit of the component's message
func (r *Response) AsUpdate() *Response {
	r.Update = true
	return r
}
