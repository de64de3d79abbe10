package core

import (
	"fmt"
	"strings"
)

// Router maps slash commands and one custom-ID domain's component actions to handlers
type Router struct {
	// domain is the custom-ID prefix for components this router owns
	domain string

	handlers   map[string]Handler
	middleware []Middleware

	customIDBuilder *CustomIDBuilder
	pipeline        *Pipeline
}

// NewRouter creates a new domain router
func NewRouter(domain string, pipeline *Pipeline) *Router {
	return &Router{
		domain:          domain,
		handlers:        make(map[string]Handler),
		middleware:      make([]Middleware, 0),
		customIDBuilder: NewCustomIDBuilder(domain),
		pipeline:        pipeline,
	}
}

// Use adds middleware applied to routes registered afterwards
func (r *Router) Use(middleware ...Middleware) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Handle registers a handler for a routing pattern
func (r *Router) Handle(pattern string, handler Handler) *Router {
	r.handlers[pattern] = MiddlewareChain(r.middleware...)(handler)
	return r
}

// Command registers a slash command handler by command name
func (r *Router) Command(name string, handler Handler) *Router {
	return r.Handle(commandPattern(name, ""), handler)
}

// CommandFunc registers a slash command handler function
func (r *Router) CommandFunc(name string, fn HandlerFunc) *Router {
	return r.Command(name, fn)
}

// Subcommand registers a subcommand handler
func (r *Router) Subcommand(parent, sub string, handler Handler) *Router {
	return r.Handle(commandPattern(parent, sub), handler)
}

// Component registers a component handler for an action in this router's domain.
// Use "*" to catch every action of the domain.
func (r *Router) Component(action string, handler Handler) *Router {
	return r.Handle(componentPattern(action), handler)
}

// ComponentFunc registers a component handler function
func (r *Router) ComponentFunc(action string, fn HandlerFunc) *Router {
	return r.Component(action, fn)
}

// Build creates a single handler from all registered routes
func (r *Router) Build() Handler {
	handlers := make(map[string]Handler, len(r.handlers))
	for k, v := range r.handlers {
		handlers[k] = v
	}

	return &routerHandler{
		domain:   r.domain,
		handlers: handlers,
	}
}

// Register registers this router with the pipeline
func (r *Router) Register() {
	if r.pipeline != nil {
		r.pipeline.Register(r.Build())
	}
}

// GetCustomIDBuilder returns the CustomID builder for this router
func (r *Router) GetCustomIDBuilder() *CustomIDBuilder {
	return r.customIDBuilder
}

func commandPattern(name, sub string) string {
	if sub != "" {
		return fmt.Sprintf("cmd:%s:%s", name, sub)
	}
	return fmt.Sprintf("cmd:%s", name)
}

func componentPattern(action string) string {
	return fmt.Sprintf("component:%s", action)
}

type routerHandler struct {
	domain   string
	handlers map[string]Handler
}

func (h *routerHandler) CanHandle(ctx *InteractionContext) bool {
	_, ok := h.lookup(ctx)
	return ok
}

func (h *routerHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	handler, ok := h.lookup(ctx)
	if !ok {
		return nil, NewNotFoundError("handler")
	}
	return handler.Handle(ctx)
}

// lookup tries the exact pattern, then wildcards from most to least specific
func (h *routerHandler) lookup(ctx *InteractionContext) (Handler, bool) {
	pattern := h.extractPattern(ctx)
	if pattern == "" {
		return nil, false
	}

	if handler, ok := h.handlers[pattern]; ok {
		return handler, true
	}

	parts := strings.Split(pattern, ":")
	for i := len(parts) - 1; i > 0; i-- {
		if handler, ok := h.handlers[strings.Join(parts[:i], ":")+":*"]; ok {
			return handler, true
		}
	}

	// A subcommand falls back to its parent command
	if ctx.IsCommand() && ctx.GetSubcommand() != "" {
		handler, ok := h.handlers[commandPattern(ctx.GetCommandName(), "")]
		return handler, ok
	}

	return nil, false
}

func (h *routerHandler) extractPattern(ctx *InteractionContext) string {
	switch {
	case ctx.IsCommand():
		return commandPattern(ctx.GetCommandName(), ctx.GetSubcommand())
	case ctx.IsComponent():
		customID, err := ParseCustomID(ctx.GetCustomID())
		if err != nil || customID.Domain != h.domain {
			return ""
		}
		return componentPattern(customID.Action)
	}
	return ""
}
