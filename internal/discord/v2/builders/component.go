package builders

import (
	"github.com/bwmarrin/discordgo"
)

const (
	// MaxRowComponents is Discord's limit of buttons per action row
	MaxRowComponents = 5

	// MaxSelectOptions is Discord's limit of options per select menu
	MaxSelectOptions = 25

	// MaxLabelLength applies to button labels and select option labels/descriptions
	MaxLabelLength = 100
)

// ComponentBuilder builds rows of Discord message components
type ComponentBuilder struct {
	rows       []discordgo.MessageComponent
	currentRow []discordgo.MessageComponent
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder() *ComponentBuilder {
	return &ComponentBuilder{
		rows:       make([]discordgo.MessageComponent, 0),
		currentRow: make([]discordgo.MessageComponent, 0, MaxRowComponents),
	}
}

// Button adds a button to the current row
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, customID string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: customID,
	})
	return b
}

// SelectMenu adds a single-choice select menu on its own row
func (b *ComponentBuilder) SelectMenu(customID, placeholder string, options []SelectOption) *ComponentBuilder {
	discordOptions := make([]discordgo.SelectMenuOption, 0, len(options))
	for _, opt := range options {
		o := discordgo.SelectMenuOption{
			Label:       opt.Label,
			Value:       opt.Value,
			Description: opt.Description,
			Default:     opt.Default,
		}
		if opt.Emoji != "" {
			o.Emoji = &discordgo.ComponentEmoji{Name: opt.Emoji}
		}
		discordOptions = append(discordOptions, o)
	}

	menu := discordgo.SelectMenu{
		CustomID:    customID,
		Placeholder: placeholder,
		Options:     discordOptions,
	}

	// A select menu fills a whole row
	b.NewRow()
	b.currentRow = append(b.currentRow, menu)
	b.NewRow()
	return b
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
		b.currentRow = make([]discordgo.MessageComponent, 0, MaxRowComponents)
	}
	return b
}

// Build returns the built components
func (b *ComponentBuilder) Build() []discordgo.MessageComponent {
	b.NewRow()
	return b.rows
}

func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	if len(b.currentRow) >= MaxRowComponents {
		b.NewRow()
	}

	b.currentRow = append(b.currentRow, component)
}

// SelectOption represents an option in a select menu
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Emoji       string
	Default     bool
}
