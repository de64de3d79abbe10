package v2

import (
	"context"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/routers"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// SetupConfig holds everything the interaction pipeline is built from
type SetupConfig struct {
	HelpHandler *handlers.HelpHandler
	Logger      *zap.Logger

	// RateLimit caps help interactions per user per minute; zero disables it
	RateLimit      int
	RateLimitStore middleware.RateLimitStore

	// IDGenerator tags each interaction with a request ID
	IDGenerator uuid.Generator
}

// SetupV2Handlers builds the pipeline and registers the help router
func SetupV2Handlers(cfg *SetupConfig) *core.Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pipeline := core.NewPipeline(logger)

	// first middleware is outermost
	pipeline.Use(
		middleware.RequestIDMiddleware(cfg.IDGenerator),
		middleware.LoggingMiddleware(&middleware.LogConfig{Logger: logger, LogRequests: true}),
		middleware.ErrorMiddleware(&middleware.ErrorConfig{Logger: logger}),
		middleware.RecoveryMiddleware(logger),
	)

	routers.NewHelpRouter(pipeline, &routers.HelpRouterConfig{
		Handler:        cfg.HelpHandler,
		RateLimit:      cfg.RateLimit,
		RateLimitStore: cfg.RateLimitStore,
	})

	return pipeline
}

// InteractionHandler adapts the pipeline to a discordgo event handler
func InteractionHandler(pipeline *core.Pipeline, logger *zap.Logger) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if err := pipeline.Execute(context.Background(), s, i); err != nil {
			logger.Error("Interaction pipeline failed", zap.Error(err))
		}
	}
}

// MessageHandler adapts the prefix help command to a discordgo event handler
func MessageHandler(help *handlers.HelpHandler, logger *zap.Logger) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author != nil && s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
			return
		}

		if _, err := help.HandleMessage(context.Background(), s, m); err != nil {
			logger.Error("Prefix help failed",
				zap.String("channel_id", m.ChannelID),
				zap.Error(err),
			)
		}
	}
}
