// Package helpdocs turns a catalog of bot commands into help menu pages
package helpdocs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/builders"
	"github.com/bwmarrin/discordgo"
)

const (
	// DefaultPerPage is used when a catalog does not set per_page
	DefaultPerPage = 6

	// MaxPerPage is Discord's limit of fields per embed
	MaxPerPage = 25

	maxFieldValue = 1024
)

var (
	// ErrUnknownTopic is returned for a topic that matches no category
	ErrUnknownTopic = errors.New("unknown help topic")

	// ErrEmptyCatalog is returned for a catalog without categories
	ErrEmptyCatalog = errors.New("help catalog has no categories")
)

// Catalog is everything the help menu can show
type Catalog struct {
	Title       string     `koanf:"title"`
	Description string     `koanf:"description"`
	Color       int        `koanf:"color"`
	PerPage     int        `koanf:"per_page"`
	Footer      string     `koanf:"footer"`
	Categories  []Category `koanf:"categories"`
}

// Category groups related commands; it is also a help topic
type Category struct {
	Name        string    `koanf:"name"`
	Description string    `koanf:"description"`
	Emoji       string    `koanf:"emoji"`
	Commands    []Command `koanf:"commands"`
}

// Command is one documented bot command
type Command struct {
	Name        string `koanf:"name"`
	Usage       string `koanf:"usage"`
	Description string `koanf:"description"`
}

// Validate fills defaults and rejects catalogs that cannot be paginated
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return ErrEmptyCatalog
	}

	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
	if c.PerPage < 1 || c.PerPage > MaxPerPage {
		return fmt.Errorf("per_page must be between 1 and %d, got %d", MaxPerPage, c.PerPage)
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, category := range c.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("category %d has no name", i+1)
		}
		key := topicKey(category.Name)
		if seen[key] {
			return fmt.Errorf("duplicate category %q", category.Name)
		}
		seen[key] = true

		for j, cmd := range category.Commands {
			if strings.TrimSpace(cmd.Name) == "" {
				return fmt.Errorf("command %d in category %q has no name", j+1, category.Name)
			}
		}
	}

	if c.Color == 0 {
		c.Color = builders.ColorPrimary
	}

	return nil
}

// Topics lists the category names usable as a topic
func (c *Catalog) Topics() []string {
	topics := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		topics = append(topics, category.Name)
	}
	return topics
}

// Category finds a category by case-insensitive name
func (c *Catalog) Category(topic string) (*Category, bool) {
	key := topicKey(topic)
	for i := range c.Categories {
		if topicKey(c.Categories[i].Name) == key {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// Pages builds the help menu. An empty topic yields an overview page followed by
// every category; otherwise only that category's pages. Every page is footed "Page i/N".
func (c *Catalog) Pages(topic string) ([]*discordgo.MessageEmbed, error) {
	var pages []*discordgo.MessageEmbed

	if strings.TrimSpace(topic) == "" {
		pages = append(pages, c.overview())
		for i := range c.Categories {
			pages = append(pages, c.categoryPages(&c.Categories[i])...)
		}
	} else {
		category, ok := c.Category(topic)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
		}
		pages = c.categoryPages(category)
	}

	for i, page := range pages {
		footer := fmt.Sprintf("Page %d/%d", i+1, len(pages))
		if c.Footer != "" {
			footer = c.Footer + " • " + footer
		}
		page.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}

	return pages, nil
}

func (c *Catalog) overview() *discordgo.MessageEmbed {
	embed := builders.NewEmbed().
		Title(c.Title).
		Description(c.Description).
		Color(c.Color)

	for _, category := range c.Categories {
		value := category.Description
		if value == "" {
			value = fmt.Sprintf("%d commands", len(category.Commands))
		}
		embed.Field(category.label(), builders.Truncate(value, maxFieldValue), false)
	}

	return embed.Build()
}

func (c *Catalog) categoryPages(category *Category) []*discordgo.MessageEmbed {
	if len(category.Commands) == 0 {
		return []*discordgo.MessageEmbed{
			builders.NewEmbed().
				Title(category.label()).
				Description(category.Description).
				Color(c.Color).
				Build(),
		}
	}

	var pages []*discordgo.MessageEmbed
	for start := 0; start < len(category.Commands); start += c.PerPage {
		end := start + c.PerPage
		if end > len(category.Commands) {
			end = len(category.Commands)
		}

		embed := builders.NewEmbed().
			Title(category.label()).
			Description(category.Description).
			Color(c.Color)

		for _, cmd := range category.Commands[start:end] {
			embed.Field(cmd.heading(), builders.Truncate(cmd.body(), maxFieldValue), false)
		}

		pages = append(pages, embed.Build())
	}
	return pages
}

func (c *Category) label() string {
	if c.Emoji == "" {
		return c.Name
	}
	return c.Emoji + " " + c.Name
}

func (c *Command) heading() string {
	if c.Usage != "" {
		return c.Usage
	}
	return c.Name
}

func (c *Command) body() string {
	if c.Description == "" {
		return "No description"
	}
	return c.Description
}

func topicKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
