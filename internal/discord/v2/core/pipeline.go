package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Middleware is a function that wraps a handler
type Middleware func(Handler) Handler

// ErrorHandler turns an uncaught handler error into a result
type ErrorHandler func(ctx *InteractionContext, err error) *HandlerResult

// ResponderFactory creates the responder for one interaction
type ResponderFactory func(s *discordgo.Session, i *discordgo.InteractionCreate) InteractionResponder

// Pipeline manages handler registration and execution
type Pipeline struct {
	handlers   []Handler
	middleware []Middleware

	errorHandler     ErrorHandler
	responderFactory ResponderFactory
	logger           *zap.Logger

	mu sync.RWMutex
}

// NewPipeline creates a new handler pipeline
func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		handlers:     make([]Handler, 0),
		middleware:   make([]Middleware, 0),
		errorHandler: defaultErrorHandler,
		responderFactory: func(s *discordgo.Session, i *discordgo.InteractionCreate) InteractionResponder {
			return NewDiscordResponder(s, i)
		},
		logger: logger.Named("pipeline"),
	}
}

// Use adds middleware applied to handlers registered afterwards
func (p *Pipeline) Use(middleware ...Middleware) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.middleware = append(p.middleware, middleware...)
}

// Register adds handlers to the pipeline, wrapped in the current middleware
func (p *Pipeline) Register(handlers ...Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range handlers {
		p.handlers = append(p.handlers, &wrappedHandler{
			route: h,
			next:  MiddlewareChain(p.middleware...)(h),
		})
	}
}

// wrappedHandler keeps the original CanHandle while running through middleware,
// since middleware-built HandlerFuncs accept everything
type wrappedHandler struct {
	route Handler
	next  Handler
}

func (w *wrappedHandler) CanHandle(ctx *InteractionContext) bool {
	return w.route.CanHandle(ctx)
}

func (w *wrappedHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	return w.next.Handle(ctx)
}

// SetErrorHandler sets a custom error handler
func (p *Pipeline) SetErrorHandler(handler ErrorHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errorHandler = handler
}

// SetResponderFactory replaces how responders are created (tests use a mock)
func (p *Pipeline) SetResponderFactory(factory ResponderFactory) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.responderFactory = factory
}

// HandlerCount returns the number of registered handlers
func (p *Pipeline) HandlerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.handlers)
}

// Execute runs the first handler that can handle the interaction
func (p *Pipeline) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ic := NewInteractionContext(ctx, s, i)

	p.mu.RLock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	errorHandler := p.errorHandler
	responder := p.responderFactory(s, i)
	p.mu.RUnlock()

	ic.WithResponder(responder)

	for _, handler := range handlers {
		if !handler.CanHandle(ic) {
			continue
		}

		result, err := handler.Handle(ic)
		if err != nil {
			if responder.HasResponded() {
				p.logger.Warn("handler failed after responding", zap.Error(err))
				return nil
			}
			result = errorHandler(ic, err)
		}

		if result != nil && result.Response != nil {
			if err := responder.Respond(result.Response); err != nil {
				return fmt.Errorf("failed to send response: %w", err)
			}
		}

		return nil
	}

	// Stale components from other bots or removed features end up here
	p.logger.Debug("no handler for interaction",
		zap.String("command", ic.GetCommandName()),
		zap.String("custom_id", ic.GetCustomID()),
	)

	if !responder.HasResponded() {
		return responder.Respond(NewEphemeralResponse("I don't know how to handle that."))
	}

	return nil
}

// defaultErrorHandler shows user messages and hides everything else
func defaultErrorHandler(ctx *InteractionContext, err error) *HandlerResult {
	if msg, ok := UserMessage(err); ok {
		return &HandlerResult{Response: NewEphemeralResponse(msg)}
	}

	return &HandlerResult{
		Response: NewEphemeralResponse("An error occurred while processing your request."),
	}
}

// MiddlewareChain creates a single middleware from multiple middleware.
// The first middleware is the outermost.
func MiddlewareChain(middleware ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}
