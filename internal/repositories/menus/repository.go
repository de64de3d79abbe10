package menus

//go:generate mockgen -destination=mock/mock_repository.go -package=mockmenus -source=repository.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/entities"
)

// Repository stores live help menus keyed by menu ID.
// Expired menus behave as if they were never stored.
type Repository interface {
	// Create stores a new menu; the ID must not be in use
	Create(ctx context.Context, menu *entities.Menu) error

	// Get retrieves a menu by ID
	Get(ctx context.Context, id string) (*entities.Menu, error)

	// UpdateIndex moves the menu's cursor without touching its expiry
	UpdateIndex(ctx context.Context, id string, index int) error

	// Delete removes a menu. Deleting a missing menu is not an error.
	Delete(ctx context.Context, id string) error
}

// TimeProvider lets tests control expiry
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time {
	return time.Now()
}

// RealTime returns a TimeProvider backed by the system clock
func RealTime() TimeProvider {
	return realTime{}
}
