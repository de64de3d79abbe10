package testutils

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/entities"
	"github.com/bwmarrin/discordgo"
)

// CreateTestPage creates a single help page embed
func CreateTestPage(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       title,
		Description: description,
	}
}

// CreateTestPages creates n pages titled "Page 1".."Page n"
func CreateTestPages(n int) []*discordgo.MessageEmbed {
	pages := make([]*discordgo.MessageEmbed, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, CreateTestPage(
			fmt.Sprintf("Page %d", i),
			fmt.Sprintf("Contents of page %d", i),
		))
	}
	return pages
}

// CreateTestMenu creates a menu with n pages owned by ownerID that expires after ttl.
// A zero ttl makes a menu that never expires.
func CreateTestMenu(id, ownerID string, n int, now time.Time, ttl time.Duration) *entities.Menu {
	menu := &entities.Menu{
		ID:        id,
		Pages:     CreateTestPages(n),
		OwnerID:   ownerID,
		ChannelID: "test-channel-123",
		CreatedAt: now,
	}
	if ttl > 0 {
		menu.ExpiresAt = now.Add(ttl)
	}
	return menu
}
