package menus

import (
	"context"
	"fmt"
	"sync"

	"github.com/KirkDiggler/pretty-help-bot/internal"
	"github.com/KirkDiggler/pretty-help-bot/internal/entities"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories"
)

// InMemoryRepository keeps menus in process memory; they are lost on restart
type InMemoryRepository struct {
	mu           sync.RWMutex
	menus        map[string]*entities.Menu
	timeProvider TimeProvider
}

// NewInMemory creates an in-memory menu repository
func NewInMemory(timeProvider TimeProvider) *InMemoryRepository {
	if timeProvider == nil {
		timeProvider = RealTime()
	}

	return &InMemoryRepository{
		menus:        make(map[string]*entities.Menu),
		timeProvider: timeProvider,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, menu *entities.Menu) error {
	if menu == nil {
		return internal.NewMissingParamError("menu")
	}
	if menu.ID == "" {
		return internal.NewMissingParamError("menu.ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.menus[menu.ID]; ok && !existing.IsExpired(r.timeProvider.Now()) {
		return fmt.Errorf("menu with ID %s already exists", menu.ID)
	}

	r.menus[menu.ID] = menu.Clone()
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Menu, error) {
	r.mu.RLock()
	menu, ok := r.menus[id]
	r.mu.RUnlock()

	if !ok || menu.IsExpired(r.timeProvider.Now()) {
		return nil, repositories.NewRecordNotFoundError(id)
	}

	return menu.Clone(), nil
}

func (r *InMemoryRepository) UpdateIndex(ctx context.Context, id string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	menu, ok := r.menus[id]
	if !ok || menu.IsExpired(r.timeProvider.Now()) {
		return repositories.NewRecordNotFoundError(id)
	}

	menu.Index = index
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.menus, id)
	return nil
}

// Sweep drops expired menus and returns how many were removed
func (r *InMemoryRepository) Sweep() int {
	now := r.timeProvider.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, menu := range r.menus {
		if menu.IsExpired(now) {
			delete(r.menus, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored menus, expired ones included until swept
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.menus)
}
