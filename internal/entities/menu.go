package entities

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Menu is the persisted state of one paginated help message
type Menu struct {
	ID string

	// Pages are fixed at creation; Index is the page currently shown
	Pages []*discordgo.MessageEmbed
	Index int

	// OwnerID restricts navigation to one user when set
	OwnerID string

	Ephemeral bool
	ChannelID string

	CreatedAt time.Time

	// ExpiresAt is zero for menus that never time out
	ExpiresAt time.Time
}

// IsExpired reports whether the menu timed out at now
func (m *Menu) IsExpired(now time.Time) bool {
	return !m.ExpiresAt.IsZero() && !now.Before(m.ExpiresAt)
}

// Clone returns a copy that shares page pointers but not the slice
func (m *Menu) Clone() *Menu {
	if m == nil {
		return nil
	}
	c := *m
	c.Pages = append([]*discordgo.MessageEmbed(nil), m.Pages...)
	return &c
}
