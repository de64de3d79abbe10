package middleware

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"go.uber.org/zap"
)

// ErrorConfig configures error handling behavior
type ErrorConfig struct {
	Logger *zap.Logger

	// DefaultUserMessage is shown when no user-friendly message exists
	DefaultUserMessage string
}

// DefaultErrorConfig returns sensible defaults
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		Logger:             zap.NewNop(),
		DefaultUserMessage: "An error occurred while processing your request.",
	}
}

// ErrorMiddleware turns handler errors into ephemeral replies and logs them
func ErrorMiddleware(config *ErrorConfig) core.Middleware {
	if config == nil {
		config = DefaultErrorConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("errors")

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			result, err := next.Handle(ctx)
			if err == nil {
				return result, nil
			}

			code := core.ErrorCode(err)
			fields := append(interactionFields(ctx), zap.Int("code", code), zap.Error(err))
			if code >= core.ErrorCodeInternal {
				logger.Error("Handler failed", fields...)
			} else {
				logger.Info("Handler rejected interaction", fields...)
			}

			// Discord allows one initial response; a handler that already used it
			// cannot be followed by an error reply.
			if responder := ctx.Responder(); responder != nil && responder.HasResponded() {
				return core.Handled(), nil
			}

			return &core.HandlerResult{
				Response: createErrorResponse(err, config),
			}, nil
		})
	}
}

// RecoveryMiddleware converts handler panics into an ephemeral reply
func RecoveryMiddleware(logger *zap.Logger) core.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("recovery")

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (result *core.HandlerResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					var panicErr error
					switch v := r.(type) {
					case error:
						panicErr = v
					case string:
						panicErr = errors.New(v)
					default:
						panicErr = fmt.Errorf("panic: %v", r)
					}

					logger.Error("Panic recovered in handler",
						append(interactionFields(ctx), zap.Error(panicErr), zap.Stack("stack"))...,
					)

					err = nil
					result = &core.HandlerResult{
						Response: core.NewEphemeralResponse("An unexpected error occurred. Please try again later."),
					}
				}
			}()

			return next.Handle(ctx)
		})
	}
}

func createErrorResponse(err error, config *ErrorConfig) *core.Response {
	if message, ok := core.UserMessage(err); ok {
		return core.NewEphemeralResponse(message)
	}

	message := config.DefaultUserMessage
	if message == "" {
		message = DefaultErrorConfig().DefaultUserMessage
	}
	return core.NewEphemeralResponse(message)
}
