package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/menu"
	"github.com/KirkDiggler/pretty-help-bot/internal/helpdocs"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	// HelpCommandName is the slash command and prefix command name
	HelpCommandName = "help"

	topicOption     = "topic"
	maxTopicChoices = 25
)

// HelpHandler answers /help and !help with a paginated menu
type HelpHandler struct {
	catalog    *helpdocs.Catalog
	dispatcher *menu.Dispatcher
	prefix     string
	logger     *zap.Logger
}

// HelpHandlerConfig holds the configuration
type HelpHandlerConfig struct {
	Catalog    *helpdocs.Catalog
	Dispatcher *menu.Dispatcher

	// Prefix for message commands; empty disables them
	Prefix string

	Logger *zap.Logger
}

// NewHelpHandler creates a new help handler
func NewHelpHandler(cfg *HelpHandlerConfig) (*HelpHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HelpHandler{
		catalog:    cfg.Catalog,
		dispatcher: cfg.Dispatcher,
		prefix:     cfg.Prefix,
		logger:     logger.Named("help"),
	}, nil
}

// Command is the /help definition registered with Discord
func (h *HelpHandler) Command() *discordgo.ApplicationCommand {
	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        topicOption,
		Description: "Only show one section",
		Required:    false,
	}

	for i, topic := range h.catalog.Topics() {
		if i == maxTopicChoices {
			break
		}
		option.Choices = append(option.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  topic,
			Value: topic,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        HelpCommandName,
		Description: "Browse the bot's commands",
		Options:     []*discordgo.ApplicationCommandOption{option},
	}
}

// HandleCommand answers /help [topic]
func (h *HelpHandler) HandleCommand(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	pages, err := h.pages(ctx.GetStringParam(topicOption))
	if err != nil {
		return nil, err
	}

	err = h.dispatcher.SendPages(ctx.Context, &menu.Invocation{
		Responder: ctx.Responder(),
		AuthorID:  ctx.UserID,
		ChannelID: ctx.ChannelID,
	}, nil, pages)
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("failed to send help menu: %w", err))
	}

	return core.Handled(), nil
}

// HandleComponent answers presses on a help menu's controls
func (h *HelpHandler) HandleComponent(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	id, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil {
		return nil, core.NewValidationError("That control is not recognised.")
	}

	if err := h.dispatcher.HandleComponent(ctx, id); err != nil {
		return nil, err
	}

	return core.Handled(), nil
}

// HandleMessage answers prefix commands such as "!help menus". It reports
// whether the message was a help request.
func (h *HelpHandler) HandleMessage(ctx context.Context, sender menu.MessageSender, m *discordgo.MessageCreate) (bool, error) {
	topic, ok := h.parsePrefixCommand(m)
	if !ok {
		return false, nil
	}

	dest := menu.NewChannelDestination(sender, m.ChannelID)

	pages, err := h.pages(topic)
	if err != nil {
		message, shown := core.UserMessage(err)
		if !shown {
			return true, err
		}
		if _, sendErr := dest.Send(ctx, &discordgo.MessageSend{Content: message}); sendErr != nil {
			return true, fmt.Errorf("failed to send help error: %w", sendErr)
		}
		return true, nil
	}

	err = h.dispatcher.SendPages(ctx, &menu.Invocation{
		AuthorID:  m.Author.ID,
		ChannelID: m.ChannelID,
	}, dest, pages)
	if err != nil {
		return true, fmt.Errorf("failed to send help menu: %w", err)
	}

	h.logger.Debug("Prefix help sent",
		zap.String("user_id", m.Author.ID),
		zap.String("channel_id", m.ChannelID),
		zap.String("topic", topic),
	)

	return true, nil
}

func (h *HelpHandler) parsePrefixCommand(m *discordgo.MessageCreate) (string, bool) {
	if h.prefix == "" || m == nil || m.Message == nil || m.Author == nil || m.Author.Bot {
		return "", false
	}

	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, h.prefix) {
		return "", false
	}

	fields := strings.Fields(strings.TrimPrefix(content, h.prefix))
	if len(fields) == 0 || !strings.EqualFold(fields[0], HelpCommandName) {
		return "", false
	}

	return strings.Join(fields[1:], " "), true
}

func (h *HelpHandler) pages(topic string) ([]*discordgo.MessageEmbed, error) {
	pages, err := h.catalog.Pages(topic)
	if errors.Is(err, helpdocs.ErrUnknownTopic) {
		return nil, core.NewValidationError(fmt.Sprintf(
			"Unknown help topic %q. Try one of: %s",
			topic, strings.Join(h.catalog.Topics(), ", "),
		))
	}
	if err != nil {
		return nil, core.NewInternalError(err)
	}
	return pages, nil
}
