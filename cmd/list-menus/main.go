package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	var keys []string
	iter := client.Scan(ctx, 0, "menu:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Fatalf("Failed to scan menu keys: %v", err)
	}

	fmt.Printf("Found %d menus:\n", len(keys))
	for _, key := range keys {
		raw, getErr := client.Get(ctx, key).Bytes()
		if getErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", key, getErr)
			continue
		}

		var data menus.Data
		if err := json.Unmarshal(raw, &data); err != nil {
			fmt.Printf("  %s: ERROR - %v\n", key, err)
			continue
		}

		ttl := client.TTL(ctx, key).Val()
		fmt.Printf("  %s: page %d/%d, owner %q, channel %q, created %s, ttl %s\n",
			key, data.Index+1, len(data.Pages), data.OwnerID, data.ChannelID,
			data.CreatedAt.Format(time.RFC3339), ttl)
	}
}
