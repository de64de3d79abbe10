package v2_test

import (
	"context"
	"testing"
	"time"

	v2 "github.com/KirkDiggler/pretty-help-bot/internal/discord/v2"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/menu"
	"github.com/KirkDiggler/pretty-help-bot/internal/helpdocs"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	pipeline   *core.Pipeline
	repo       *menus.InMemoryRepository
	responders []*core.MockResponder
}

func newHarness(t *testing.T, rateLimit int) *harness {
	t.Helper()

	repo := menus.NewInMemory(nil)
	help, err := handlers.NewHelpHandler(&handlers.HelpHandlerConfig{
		Catalog: helpdocs.Default(),
		Dispatcher: menu.NewDispatcher(&menu.DispatcherConfig{
			Repository:  repo,
			IDGenerator: uuid.NewSequenceGenerator("menu"),
			Timeout:     time.Hour,
			OwnerOnly:   true,
		}),
	})
	require.NoError(t, err)

	h := &harness{repo: repo}
	h.pipeline = v2.SetupV2Handlers(&v2.SetupConfig{
		HelpHandler: help,
		RateLimit:   rateLimit,
		IDGenerator: uuid.NewSequenceGenerator("req"),
	})
	h.pipeline.SetResponderFactory(func(*discordgo.Session, *discordgo.InteractionCreate) core.InteractionResponder {
		r := core.NewMockResponder()
		h.responders = append(h.responders, r)
		return r
	})

	return h
}

func (h *harness) last() *core.Response {
	return h.responders[len(h.responders)-1].LastResponse()
}

func member(userID string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: userID}}
}

func helpCommand(userID string, topic string) *discordgo.InteractionCreate {
	data := discordgo.ApplicationCommandInteractionData{Name: "help"}
	if topic != "" {
		data.Options = []*discordgo.ApplicationCommandInteractionDataOption{{
			Name:  "topic",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: topic,
		}}
	}

	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "channel-1",
		Member:    member(userID),
		Data:      data,
	}}
}

func press(userID, customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "channel-1",
		Member:    member(userID),
		Message:   &discordgo.Message{ID: "msg-1", ChannelID: "channel-1"},
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   values,
		},
	}}
}

func TestHelpFlow(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	require.NoError(t, h.pipeline.Execute(ctx, nil, helpCommand("U", "")))
	first := h.last()
	require.NotNil(t, first)
	assert.Equal(t, helpdocs.Default().Title, first.Embeds[0].Title)
	assert.False(t, first.Update)

	require.NoError(t, h.pipeline.Execute(ctx, nil, press("U", "pretty_help:next:menu-1")))
	assert.True(t, h.last().Update)
	assert.Contains(t, h.last().Embeds[0].Footer.Text, "Page 2/4")

	require.NoError(t, h.pipeline.Execute(ctx, nil, press("U", "pretty_help:select:menu-1", "3")))
	assert.Contains(t, h.last().Embeds[0].Footer.Text, "Page 4/4")

	require.NoError(t, h.pipeline.Execute(ctx, nil, press("V", "pretty_help:previous:menu-1")))
	assert.Equal(t, menu.RejectionMessage, h.last().Content)
	assert.True(t, h.last().Ephemeral)

	require.NoError(t, h.pipeline.Execute(ctx, nil, press("U", "pretty_help:next:menu-1")))
	assert.Contains(t, h.last().Embeds[0].Footer.Text, "Page 1/4")

	require.NoError(t, h.pipeline.Execute(ctx, nil, press("U", "pretty_help:delete:menu-1:U")))
	assert.Equal(t, 1, h.responders[len(h.responders)-1].Deletes)
	assert.Zero(t, h.repo.Len())
}

func TestHelpFlow_Errors(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	require.NoError(t, h.pipeline.Execute(ctx, nil, helpCommand("U", "dragons")))
	assert.True(t, h.last().Ephemeral)
	assert.Contains(t, h.last().Content, "Unknown help topic")

	require.NoError(t, h.pipeline.Execute(ctx, nil, helpCommand("U", "")))
	require.NoError(t, h.pipeline.Execute(ctx, nil, press("U", "pretty_help:select:menu-1", "abc")))
	assert.True(t, h.last().Ephemeral)
	assert.Contains(t, h.last().Content, "not a page number")

	// components from other features are not ours
	require.NoError(t, h.pipeline.Execute(ctx, nil, press("U", "poll:vote:1")))
	assert.Equal(t, "I don't know how to handle that.", h.last().Content)
}

func TestHelpFlow_RateLimit(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()

	require.NoError(t, h.pipeline.Execute(ctx, nil, helpCommand("U", "")))
	assert.False(t, h.last().Ephemeral)

	require.NoError(t, h.pipeline.Execute(ctx, nil, helpCommand("U", "")))
	assert.True(t, h.last().Ephemeral)
	assert.Contains(t, h.last().Content, "too fast")
}
