package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/entities"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Invocation is what triggered a help menu
type Invocation struct {
	// Responder is set when the menu answers an interaction
	Responder core.InteractionResponder

	AuthorID  string
	ChannelID string
}

// Destination receives menus that are not interaction responses
type Destination interface {
	Send(ctx context.Context, msg *discordgo.MessageSend) (*discordgo.Message, error)
}

// MessageSender is the part of *discordgo.Session a ChannelDestination needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelDestination sends to a Discord text channel
type ChannelDestination struct {
	sender    MessageSender
	channelID string
}

// NewChannelDestination creates a destination for channelID
func NewChannelDestination(sender MessageSender, channelID string) *ChannelDestination {
	return &ChannelDestination{sender: sender, channelID: channelID}
}

func (d *ChannelDestination) Send(ctx context.Context, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	return d.sender.ChannelMessageSendComplex(d.channelID, msg, discordgo.WithContext(ctx))
}

// DispatcherConfig holds configuration for the menu dispatcher
type DispatcherConfig struct {
	Repository   menus.Repository
	IDGenerator  uuid.Generator
	TimeProvider menus.TimeProvider
	Logger       *zap.Logger

	// Timeout after which a menu stops navigating; zero keeps it alive
	Timeout time.Duration

	// Ephemeral interaction responses are only visible to the author
	Ephemeral bool

	// OwnerOnly binds each menu to the user who asked for it
	OwnerOnly bool
}

// Dispatcher sends help menus and handles presses on their controls
type Dispatcher struct {
	repository   menus.Repository
	idGenerator  uuid.Generator
	timeProvider menus.TimeProvider
	logger       *zap.Logger
	timeout      time.Duration
	ephemeral    bool
	ownerOnly    bool
}

// NewDispatcher creates a dispatcher
func NewDispatcher(cfg *DispatcherConfig) *Dispatcher {
	if cfg == nil || cfg.Repository == nil {
		panic("menu repository is required")
	}

	idGenerator := cfg.IDGenerator
	if idGenerator == nil {
		idGenerator = uuid.NewGoogleUUIDGenerator()
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = menus.RealTime()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		repository:   cfg.Repository,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger.Named("menu"),
		timeout:      cfg.Timeout,
		ephemeral:    cfg.Ephemeral,
		ownerOnly:    cfg.OwnerOnly,
	}
}

// SendPages shows pages[0] with navigation controls. With a responder on the
// invocation the menu answers the interaction; otherwise it is sent to dest.
func (d *Dispatcher) SendPages(ctx context.Context, inv *Invocation, dest Destination, pages []*discordgo.MessageEmbed) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	if inv == nil {
		return internal.NewMissingParamError("invocation")
	}
	if inv.Responder == nil && dest == nil {
		return internal.NewMissingParamError("destination")
	}

	now := d.timeProvider.Now()
	state := &entities.Menu{
		ID:        d.idGenerator.New(),
		Pages:     pages,
		Ephemeral: d.ephemeral && inv.Responder != nil,
		ChannelID: inv.ChannelID,
		CreatedAt: now,
	}
	if d.ownerOnly {
		state.OwnerID = inv.AuthorID
	}
	if d.timeout > 0 {
		state.ExpiresAt = now.Add(d.timeout)
	}

	nav, err := NewNav(&NavConfig{
		ID:        state.ID,
		Pages:     state.Pages,
		OwnerID:   state.OwnerID,
		Ephemeral: state.Ephemeral,
	})
	if err != nil {
		return err
	}

	if err := d.repository.Create(ctx, state); err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}

	if inv.Responder != nil {
		err = inv.Responder.Respond(nav.InitialResponse())
	} else {
		_, err = dest.Send(ctx, nav.MessageSend())
	}
	if err != nil {
		if delErr := d.repository.Delete(ctx, state.ID); delErr != nil {
			d.logger.Warn("failed to drop unsent menu", zap.String("menu_id", state.ID), zap.Error(delErr))
		}
		return err
	}

	d.logger.Debug("menu sent",
		zap.String("menu_id", state.ID),
		zap.Int("pages", len(pages)),
		zap.String("owner_id", state.OwnerID),
		zap.Bool("ephemeral", state.Ephemeral),
	)

	return nil
}

// HandleComponent runs a press on one of a menu's controls
func (d *Dispatcher) HandleComponent(ctx *core.InteractionContext, id *core.CustomID) error {
	if id == nil || id.Domain != Domain {
		return core.NewValidationError("That control does not belong to a help menu.")
	}

	state, err := d.repository.Get(ctx.Context, id.Target)
	if errors.Is(err, internal.ErrNotFound) {
		return d.handleExpired(ctx, id)
	}
	if err != nil {
		return core.NewInternalError(fmt.Errorf("failed to load menu %s: %w", id.Target, err))
	}

	nav, err := d.navFor(state)
	if err != nil {
		return core.NewInternalError(err)
	}

	ran, err := nav.Dispatch(ctx, id.Action)
	if err != nil {
		return err
	}

	if ran {
		d.logger.Debug("menu control",
			zap.String("menu_id", state.ID),
			zap.String("action", id.Action),
			zap.Int("index", nav.Index()),
		)
	} else {
		d.logger.Debug("menu control rejected",
			zap.String("menu_id", state.ID),
			zap.String("action", id.Action),
			zap.String("user_id", ctx.UserID),
		)
	}

	return nil
}

func (d *Dispatcher) navFor(state *entities.Menu) (*Nav, error) {
	return NewNav(&NavConfig{
		ID:        state.ID,
		Pages:     state.Pages,
		Index:     state.Index,
		OwnerID:   state.OwnerID,
		Ephemeral: state.Ephemeral,
		OnMove: func(ctx context.Context, index int) error {
			if err := d.repository.UpdateIndex(ctx, state.ID, index); err != nil {
				return fmt.Errorf("failed to save menu page: %w", err)
			}
			return nil
		},
		OnDelete: func(ctx context.Context) error {
			if err := d.repository.Delete(ctx, state.ID); err != nil {
				return fmt.Errorf("failed to drop menu: %w", err)
			}
			return nil
		},
	})
}

// handleExpired deals with presses on menus whose state timed out or was
// never stored here. Delete still works for the owner carried in its custom ID.
func (d *Dispatcher) handleExpired(ctx *core.InteractionContext, id *core.CustomID) error {
	responder := ctx.Responder()
	if responder == nil {
		return ErrNoResponder
	}

	msg := ctx.GetMessage()

	ownerID := id.Arg(0)
	if id.Action != ActionDelete && msg != nil {
		ownerID = OwnerFromComponents(msg.Components)
	}

	allowed, err := CheckOwner(ctx, ownerID)
	if err != nil || !allowed {
		return err
	}

	d.logger.Debug("press on expired menu",
		zap.String("menu_id", id.Target),
		zap.String("action", id.Action),
	)

	if id.Action == ActionDelete {
		if err := responder.DeleteMessage(); err != nil {
			return fmt.Errorf("failed to delete menu message: %w", err)
		}
		return nil
	}

	return responder.Respond(ExpiredResponse(msg))
}
