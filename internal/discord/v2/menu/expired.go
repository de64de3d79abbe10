package menu

import (
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/bwmarrin/discordgo"
)

// ExpiredResponse re-renders a timed out menu message with its navigation
// disabled. Delete stays usable so the owner can still clean up.
func ExpiredResponse(msg *discordgo.Message) *core.Response {
	if msg == nil {
		return core.NewEphemeralResponse("This help menu has expired.")
	}

	return core.NewResponse(msg.Content).
		WithEmbeds(msg.Embeds...).
		WithComponents(DisableNavigation(msg.Components)...).
		AsUpdate()
}

// DisableNavigation copies rows of components, disabling every menu control except Delete.
// Components from gateway messages arrive as pointers; the copies are values.
func DisableNavigation(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(components))
	for _, component := range components {
		row, ok := asRow(component)
		if !ok {
			out = append(out, component)
			continue
		}

		disabled := make([]discordgo.MessageComponent, 0, len(row.Components))
		for _, child := range row.Components {
			disabled = append(disabled, disableControl(child))
		}
		out = append(out, discordgo.ActionsRow{Components: disabled})
	}
	return out
}

// OwnerFromComponents returns the owner ID carried by a menu's Delete button, if any
func OwnerFromComponents(components []discordgo.MessageComponent) string {
	for _, component := range components {
		row, ok := asRow(component)
		if !ok {
			continue
		}
		for _, child := range row.Components {
			button, ok := asButton(child)
			if !ok {
				continue
			}
			id, err := core.ParseCustomID(button.CustomID)
			if err == nil && id.Domain == Domain && id.Action == ActionDelete {
				return id.Arg(0)
			}
		}
	}
	return ""
}

func disableControl(component discordgo.MessageComponent) discordgo.MessageComponent {
	if button, ok := asButton(component); ok {
		button.Disabled = button.Disabled || isNavigation(button.CustomID)
		return button
	}

	switch c := component.(type) {
	case discordgo.SelectMenu:
		c.Disabled = c.Disabled || isNavigation(c.CustomID)
		return c
	case *discordgo.SelectMenu:
		if c == nil {
			return component
		}
		menu := *c
		menu.Disabled = menu.Disabled || isNavigation(menu.CustomID)
		return menu
	}

	return component
}

func isNavigation(customID string) bool {
	id, err := core.ParseCustomID(customID)
	if err != nil || id.Domain != Domain {
		return false
	}
	return id.Action != ActionDelete
}

func asRow(component discordgo.MessageComponent) (discordgo.ActionsRow, bool) {
	switch c := component.(type) {
	case discordgo.ActionsRow:
		return c, true
	case *discordgo.ActionsRow:
		if c != nil {
			return *c, true
		}
	}
	return discordgo.ActionsRow{}, false
}

func asButton(component discordgo.MessageComponent) (discordgo.Button, bool) {
	switch c := component.(type) {
	case discordgo.Button:
		return c, true
	case *discordgo.Button:
		if c != nil {
			return *c, true
		}
	}
	return discordgo.Button{}, false
}
