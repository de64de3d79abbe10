package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pretty-help-bot/internal/config"
	v2 "github.com/KirkDiggler/pretty-help-bot/internal/discord/v2"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/menu"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/pretty-help-bot/internal/helpdocs"
	"github.com/KirkDiggler/pretty-help-bot/internal/logging"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
)

const sweepInterval = time.Minute

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped", zap.Error(err))
	}
}

// storage is where menus and rate limit counters live
type storage struct {
	menus      menus.Repository
	rateLimits middleware.RateLimitStore

	// sweep is set for in-memory storage
	sweep func() int

	close func() error
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	catalog, err := helpdocs.Load(cfg.Help.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load help catalog: %w", err)
	}

	logger.Info("Loaded help catalog",
		zap.String("path", cfg.Help.CatalogPath),
		zap.Strings("topics", catalog.Topics()),
	)

	store := openStorage(ctx, cfg.Redis.URL, logger)
	defer func() {
		if err := store.close(); err != nil {
			logger.Warn("Error closing storage", zap.Error(err))
		}
	}()

	dispatcher := menu.NewDispatcher(&menu.DispatcherConfig{
		Repository: store.menus,
		Logger:     logger,
		Timeout:    cfg.Help.Timeout,
		Ephemeral:  cfg.Help.Ephemeral,
		OwnerOnly:  cfg.Help.OwnerOnly,
	})

	help, err := handlers.NewHelpHandler(&handlers.HelpHandlerConfig{
		Catalog:    catalog,
		Dispatcher: dispatcher,
		Prefix:     cfg.Help.Prefix,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create help handler: %w", err)
	}

	pipeline := v2.SetupV2Handlers(&v2.SetupConfig{
		HelpHandler:    help,
		Logger:         logger,
		RateLimit:      cfg.RateLimitPerMinute,
		RateLimitStore: store.rateLimits,
		IDGenerator:    uuid.NewGoogleUUIDGenerator(),
	})

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	dg.AddHandler(v2.InteractionHandler(pipeline, logger))
	if cfg.Help.Prefix != "" {
		dg.AddHandler(v2.MessageHandler(help, logger))
	}

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("Failed to close Discord connection", zap.Error(err))
		}
	}()

	// Use empty guild ID for global commands, or a specific guild for testing
	_, err = dg.ApplicationCommandBulkOverwrite(cfg.Discord.AppID, cfg.Discord.GuildID,
		[]*discordgo.ApplicationCommand{help.Command()})
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	if cfg.Discord.GuildID != "" {
		logger.Info("Registered commands for guild", zap.String("guild_id", cfg.Discord.GuildID))
	} else {
		logger.Info("Registered global commands (may take up to 1 hour to propagate)")
	}

	logger.Info("Bot is now running. Press CTRL-C to exit.")

	g, gctx := errgroup.WithContext(ctx)
	if store.sweep != nil {
		g.Go(func() error {
			sweepLoop(gctx, store.sweep, logger)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		return nil
	})

	return g.Wait()
}

// openStorage uses Redis when redisURL is reachable and memory otherwise
func openStorage(ctx context.Context, redisURL string, logger *zap.Logger) *storage {
	if redisURL != "" {
		client, err := connectRedis(ctx, redisURL)
		if err == nil {
			logger.Info("Using Redis for persistence")
			return &storage{
				menus:      menus.NewRedis(client),
				rateLimits: middleware.NewRedisRateLimitStore(client),
				close:      client.Close,
			}
		}

		logger.Warn("Failed to connect to Redis, falling back to in-memory storage", zap.Error(err))
	} else {
		logger.Info("No REDIS_URL found, using in-memory storage")
	}

	repo := menus.NewInMemory(menus.RealTime())
	rateLimits := middleware.NewMemoryRateLimitStore()

	return &storage{
		menus:      repo,
		rateLimits: rateLimits,
		sweep: func() int {
			return repo.Sweep() + rateLimits.Sweep()
		},
		close: func() error { return nil },
	}
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to connect to Redis: %w", err), client.Close())
	}

	return client, nil
}

func sweepLoop(ctx context.Context, sweep func() int, logger *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweep(); n > 0 {
				logger.Debug("Swept expired entries", zap.Int("count", n))
			}
		}
	}
}
