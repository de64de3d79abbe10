package routers

import (
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/menu"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/middleware"
)

// HelpRouter handles /help and the controls of the menus it sends
type HelpRouter struct {
	router  *core.Router
	handler *handlers.HelpHandler
}

// HelpRouterConfig holds the configuration
type HelpRouterConfig struct {
	Handler *handlers.HelpHandler

	// RateLimit caps interactions per user per minute; zero disables it
	RateLimit int

	// RateLimitStore defaults to an in-memory store
	RateLimitStore middleware.RateLimitStore
}

// NewHelpRouter creates the router and registers it with the pipeline
func NewHelpRouter(pipeline *core.Pipeline, cfg *HelpRouterConfig) *HelpRouter {
	router := core.NewRouter(menu.Domain, pipeline)

	hr := &HelpRouter{
		router:  router,
		handler: cfg.Handler,
	}

	if cfg.RateLimit > 0 {
		router.Use(
			middleware.UserRateLimitMiddleware(cfg.RateLimit, time.Minute, cfg.RateLimitStore),
		)
	}

	hr.registerRoutes()

	router.Register()

	return hr
}

func (r *HelpRouter) registerRoutes() {
	r.router.CommandFunc(handlers.HelpCommandName, r.handler.HandleCommand)

	for _, action := range []string{
		menu.ActionPrevious,
		menu.ActionNext,
		menu.ActionSelect,
		menu.ActionDelete,
	} {
		r.router.ComponentFunc(action, r.handler.HandleComponent)
	}
}

// Handler returns the built router without registering it again
func (r *HelpRouter) Handler() core.Handler {
	return r.router.Build()
}
