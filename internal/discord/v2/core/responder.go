package core

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ErrAlreadyResponded is returned when an interaction is answered twice
var ErrAlreadyResponded = errors.New("interaction already responded to")

// InteractionResponder abstracts Discord's interaction response API
type InteractionResponder interface {
	// Respond sends the single allowed initial response. An Update response
	// edits the component's message in place.
	Respond(response *Response) error

	// DeleteMessage acknowledges the interaction and deletes the message the component is on
	DeleteMessage() error

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

// Respond sends the initial response
func (r *DiscordResponder) Respond(response *Response) error {
	if r.responded {
		return ErrAlreadyResponded
	}

	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if response.Update {
		responseType = discordgo.InteractionResponseUpdateMessage
	}

	err := r.session.InteractionRespond(r.interaction.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: buildResponseData(response),
	})
	if err != nil {
		return err
	}

	r.responded = true
	return nil
}

// DeleteMessage acks with a deferred update and then removes the component's message
func (r *DiscordResponder) DeleteMessage() error {
	if r.responded {
		return ErrAlreadyResponded
	}

	msg := r.interaction.Message
	if msg == nil {
		return fmt.Errorf("interaction has no message to delete")
	}

	err := r.session.InteractionRespond(r.interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		return err
	}
	r.responded = true

	channelID := msg.ChannelID
	if channelID == "" {
		channelID = r.interaction.ChannelID
	}

	return r.session.ChannelMessageDelete(channelID, msg.ID)
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

	// Discord ignores the flag on updates; the message keeps its original visibility
	if response.Ephemeral && !response.Update {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return data
}
