package routers

import (
	"testing"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/menu"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/pretty-help-bot/internal/helpdocs"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelpHandler(t *testing.T) *handlers.HelpHandler {
	t.Helper()

	handler, err := handlers.NewHelpHandler(&handlers.HelpHandlerConfig{
		Catalog: helpdocs.Default(),
		Dispatcher: menu.NewDispatcher(&menu.DispatcherConfig{
			Repository:  menus.NewInMemory(nil),
			IDGenerator: uuid.NewSequenceGenerator("menu"),
			Timeout:     time.Hour,
		}),
	})
	require.NoError(t, err)
	return handler
}

func TestNewHelpRouter_Routes(t *testing.T) {
	pipeline := core.NewPipeline(nil)
	router := NewHelpRouter(pipeline, &HelpRouterConfig{Handler: newHelpHandler(t)})

	assert.Equal(t, 1, pipeline.HandlerCount())

	handler := router.Handler()
	tests := []struct {
		name      string
		ctx       *core.TestInteractionContext
		canHandle bool
	}{
		{name: "help command", ctx: core.NewTestInteractionContext().AsCommand("help"), canHandle: true},
		{name: "previous", ctx: core.NewTestInteractionContext().AsComponent("pretty_help:previous:menu-1"), canHandle: true},
		{name: "next", ctx: core.NewTestInteractionContext().AsComponent("pretty_help:next:menu-1"), canHandle: true},
		{name: "select", ctx: core.NewTestInteractionContext().AsComponent("pretty_help:select:menu-1", "2"), canHandle: true},
		{name: "delete", ctx: core.NewTestInteractionContext().AsComponent("pretty_help:delete:menu-1:user-1"), canHandle: true},
		{name: "unknown action", ctx: core.NewTestInteractionContext().AsComponent("pretty_help:shuffle:menu-1"), canHandle: false},
		{name: "other command", ctx: core.NewTestInteractionContext().AsCommand("ping"), canHandle: false},
		{name: "foreign component", ctx: core.NewTestInteractionContext().AsComponent("poll:vote:1"), canHandle: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canHandle, handler.CanHandle(tt.ctx.InteractionContext))
		})
	}
}

func TestNewHelpRouter_RateLimit(t *testing.T) {
	pipeline := core.NewPipeline(nil)
	router := NewHelpRouter(pipeline, &HelpRouterConfig{
		Handler:        newHelpHandler(t),
		RateLimit:      1,
		RateLimitStore: middleware.NewMemoryRateLimitStore(),
	})
	handler := router.Handler()

	first := core.NewMockResponder()
	_, err := handler.Handle(core.NewTestInteractionContext().
		AsCommand("help").
		WithResponder(first).
		InteractionContext)
	require.NoError(t, err)
	require.NotNil(t, first.LastResponse())

	second := core.NewMockResponder()
	result, err := handler.Handle(core.NewTestInteractionContext().
		AsCommand("help").
		WithResponder(second).
		InteractionContext)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Response)
	assert.True(t, result.Response.Ephemeral)
	assert.Contains(t, result.Response.Content, "too fast")
	assert.Nil(t, second.LastResponse())
}
