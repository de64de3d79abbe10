package middleware

import (
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
	"go.uber.org/zap"
)

// LogConfig configures logging behavior
type LogConfig struct {
	Logger *zap.Logger

	// LogRequests logs incoming interactions before they are handled
	LogRequests bool

	// RequestFilter filters which requests to log
	RequestFilter func(*core.InteractionContext) bool
}

// DefaultLogConfig returns sensible defaults
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Logger:      zap.NewNop(),
		LogRequests: true,
	}
}

// LoggingMiddleware logs each interaction and how long it took
func LoggingMiddleware(config *LogConfig) core.Middleware {
	if config == nil {
		config = DefaultLogConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("interactions")

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if config.RequestFilter != nil && !config.RequestFilter(ctx) {
				return next.Handle(ctx)
			}

			fields := interactionFields(ctx)
			if config.LogRequests {
				logger.Debug("Interaction received", fields...)
			}

			start := time.Now()
			result, err := next.Handle(ctx)
			fields = append(fields, zap.Duration("duration", time.Since(start)))

			if err != nil {
				logger.Warn("Interaction failed", append(fields, zap.Error(err))...)
				return result, err
			}

			logger.Info("Interaction handled", append(fields, zap.String("status", resultStatus(result)))...)
			return result, nil
		})
	}
}

func resultStatus(result *core.HandlerResult) string {
	switch {
	case result == nil || result.Response == nil:
		return "handled"
	case result.Response.Update:
		return "update"
	case result.Response.Ephemeral:
		return "ephemeral"
	default:
		return "message"
	}
}

// RequestIDMiddleware tags each interaction with a unique request ID
func RequestIDMiddleware(generator uuid.Generator) core.Middleware {
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			ctx.WithRequestID(generator.New())
			return next.Handle(ctx)
		})
	}
}
