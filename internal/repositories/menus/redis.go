package menus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal"
	"github.com/KirkDiggler/pretty-help-bot/internal/entities"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
)

const (
	menuKeyPrefix = "menu:"

	// defaultRetention bounds menus created without a timeout
	defaultRetention = 7 * 24 * time.Hour
)

// Data is the JSON form of a menu in Redis
type Data struct {
	ID        string                    `json:"id"`
	Pages     []*discordgo.MessageEmbed `json:"pages"`
	Index     int                       `json:"index"`
	OwnerID   string                    `json:"owner_id,omitempty"`
	Ephemeral bool                      `json:"ephemeral"`
	ChannelID string                    `json:"channel_id,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
	ExpiresAt time.Time                 `json:"expires_at,omitempty"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider

	// Retention is the TTL for menus without an expiry
	Retention time.Duration
}

type redisRepository struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
	retention    time.Duration
}

// NewRedisRepository creates a Redis-backed menu repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = RealTime()
	}

	retention := cfg.Retention
	if retention == 0 {
		retention = defaultRetention
	}

	return &redisRepository{
		client:       cfg.Client,
		timeProvider: timeProvider,
		retention:    retention,
	}
}

func menuKey(id string) string {
	return menuKeyPrefix + id
}

func (r *redisRepository) Create(ctx context.Context, menu *entities.Menu) error {
	if menu == nil {
		return internal.NewMissingParamError("menu")
	}
	if menu.ID == "" {
		return internal.NewMissingParamError("menu.ID")
	}

	ttl := r.ttlFor(menu)
	if ttl <= 0 {
		return internal.NewInvalidParamError("menu %s is already expired", menu.ID)
	}

	jsonData, err := json.Marshal(toData(menu))
	if err != nil {
		return fmt.Errorf("failed to marshal menu data: %w", err)
	}

	created, err := r.client.SetNX(ctx, menuKey(menu.ID), string(jsonData), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create menu in Redis: %w", err)
	}
	if !created {
		return fmt.Errorf("menu with ID %s already exists", menu.ID)
	}

	return nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Menu, error) {
	data, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	menu := toMenu(data)
	if menu.IsExpired(r.timeProvider.Now()) {
		return nil, repositories.NewRecordNotFoundError(id)
	}

	return menu, nil
}

func (r *redisRepository) UpdateIndex(ctx context.Context, id string, index int) error {
	data, err := r.load(ctx, id)
	if err != nil {
		return err
	}

	data.Index = index
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal menu data: %w", err)
	}

	// XX so a menu that expired between load and write stays gone
	err = r.client.SetArgs(ctx, menuKey(id), string(jsonData), redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if errors.Is(err, redis.Nil) {
		return repositories.NewRecordNotFoundError(id)
	}
	if err != nil {
		return fmt.Errorf("failed to update menu in Redis: %w", err)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, menuKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete menu from Redis: %w", err)
	}
	return nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*Data, error) {
	raw, err := r.client.Get(ctx, menuKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repositories.NewRecordNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu from Redis: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu data: %w", err)
	}

	return &data, nil
}

func (r *redisRepository) ttlFor(menu *entities.Menu) time.Duration {
	if menu.ExpiresAt.IsZero() {
		return r.retention
	}
	return menu.ExpiresAt.Sub(r.timeProvider.Now())
}

func toData(menu *entities.Menu) *Data {
	return &Data{
		ID:        menu.ID,
		Pages:     menu.Pages,
		Index:     menu.Index,
		OwnerID:   menu.OwnerID,
		Ephemeral: menu.Ephemeral,
		ChannelID: menu.ChannelID,
		CreatedAt: menu.CreatedAt,
		ExpiresAt: menu.ExpiresAt,
	}
}

func toMenu(data *Data) *entities.Menu {
	return &entities.Menu{
		ID:        data.ID,
		Pages:     data.Pages,
		Index:     data.Index,
		OwnerID:   data.OwnerID,
		Ephemeral: data.Ephemeral,
		ChannelID: data.ChannelID,
		CreatedAt: data.CreatedAt,
		ExpiresAt: data.ExpiresAt,
	}
}
