package menu

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatewayComponents mirrors how discordgo decodes components on received messages
func gatewayComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{Label: "Previous", CustomID: "pretty_help:previous:m1"},
			&discordgo.Button{Label: "Next", CustomID: "pretty_help:next:m1"},
			&discordgo.Button{Label: "Delete", CustomID: "pretty_help:delete:m1:owner"},
			&discordgo.Button{Label: "Docs", Style: discordgo.LinkButton, URL: "https://example.com"},
		}},
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.SelectMenu{CustomID: "pretty_help:select:m1"},
		}},
	}
}

func TestDisableNavigation(t *testing.T) {
	rows := DisableNavigation(gatewayComponents())
	require.Len(t, rows, 2)

	buttons := rows[0].(discordgo.ActionsRow).Components
	require.Len(t, buttons, 4)
	assert.True(t, buttons[0].(discordgo.Button).Disabled)
	assert.True(t, buttons[1].(discordgo.Button).Disabled)
	assert.False(t, buttons[2].(discordgo.Button).Disabled)
	assert.False(t, buttons[3].(discordgo.Button).Disabled)

	assert.True(t, rows[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu).Disabled)
}

func TestDisableNavigation_DoesNotMutateInput(t *testing.T) {
	input := gatewayComponents()
	DisableNavigation(input)

	first := input[0].(*discordgo.ActionsRow).Components[0].(*discordgo.Button)
	assert.False(t, first.Disabled)
}

func TestOwnerFromComponents(t *testing.T) {
	assert.Equal(t, "owner", OwnerFromComponents(gatewayComponents()))
	assert.Equal(t, "", OwnerFromComponents(nil))

	withoutOwner := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: "pretty_help:delete:m1"},
		}},
	}
	assert.Equal(t, "", OwnerFromComponents(withoutOwner))
}

func TestExpiredResponse(t *testing.T) {
	msg := &discordgo.Message{
		Embeds:     []*discordgo.MessageEmbed{{Title: "Page 2"}},
		Components: gatewayComponents(),
	}

	resp := ExpiredResponse(msg)
	assert.True(t, resp.Update)
	require.Len(t, resp.Embeds, 1)
	assert.Equal(t, "Page 2", resp.Embeds[0].Title)
	assert.Len(t, resp.Components, 2)

	resp = ExpiredResponse(nil)
	assert.True(t, resp.Ephemeral)
	assert.False(t, resp.Update)
}
