package helpdocs

import "github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/builders"

// Default is the catalog used when no file is configured
func Default() *Catalog {
	catalog := &Catalog{
		Title:       "📖 Bot Help",
		Description: "Browse the pages with the buttons below or jump straight to one with the menu.",
		Color:       builders.ColorInfo,
		PerPage:     DefaultPerPage,
		Footer:      "Need more help? Contact your server admin!",
		Categories: []Category{
			{
				Name:        "Help",
				Emoji:       "❓",
				Description: "Finding your way around the bot.",
				Commands: []Command{
					{
						Name:        "help",
						Usage:       "/help [topic]",
						Description: "Show this menu. Pass a topic such as `help` or `menus` to see only that section.",
					},
					{
						Name:        "!help",
						Usage:       "!help [topic]",
						Description: "Same menu as a regular channel message, for when slash commands are unavailable.",
					},
				},
			},
			{
				Name:        "Menus",
				Emoji:       "📚",
				Description: "How the help menu controls work.",
				Commands: []Command{
					{
						Name:        "previous",
						Usage:       "Previous",
						Description: "Go back one page. From the first page it wraps around to the last.",
					},
					{
						Name:        "next",
						Usage:       "Next",
						Description: "Go forward one page. From the last page it wraps around to the first.",
					},
					{
						Name:        "select",
						Usage:       "Jump to page",
						Description: "Pick any page from the dropdown.",
					},
					{
						Name:        "delete",
						Usage:       "Delete",
						Description: "Remove the menu message. Only shown on messages everyone can see.",
					},
				},
			},
			{
				Name:        "Tips",
				Emoji:       "💡",
				Description: "Good to know.",
				Commands: []Command{
					{
						Name:        "owner",
						Usage:       "Who can press the buttons?",
						Description: "Only the person who asked for help can use the controls. Everyone else gets a private notice.",
					},
					{
						Name:        "timeout",
						Usage:       "Why did the buttons stop working?",
						Description: "Menus stop navigating after a while. Their buttons are greyed out but Delete still works.",
					},
				},
			},
		},
	}

	// built-in catalog is always valid
	_ = catalog.Validate()

	return catalog
}
