package middleware

import (
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"go.uber.org/zap"
)

// interactionFields describes an interaction for structured logs
func interactionFields(ctx *core.InteractionContext) []zap.Field {
	fields := []zap.Field{
		zap.String("user_id", ctx.UserID),
		zap.String("guild_id", ctx.GuildID),
		zap.String("channel_id", ctx.ChannelID),
	}

	if id := ctx.RequestID(); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	switch {
	case ctx.IsCommand():
		fields = append(fields, zap.String("command", ctx.GetCommandName()))
		if sub := ctx.GetSubcommand(); sub != "" {
			fields = append(fields, zap.String("subcommand", sub))
		}
	case ctx.IsComponent():
		if parsed, err := core.ParseCustomID(ctx.GetCustomID()); err == nil {
			fields = append(fields,
				zap.String("domain", parsed.Domain),
				zap.String("action", parsed.Action),
			)
		} else {
			fields = append(fields, zap.String("custom_id", ctx.GetCustomID()))
		}
	}

	return fields
}
