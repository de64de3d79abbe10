package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/bwmarrin/discordgo"
)

// Domain prefixes every custom ID a menu renders
const Domain = "pretty_help"

// Control actions, the second part of a menu custom ID
const (
	ActionPrevious = "previous"
	ActionNext     = "next"
	ActionDelete   = "delete"
	ActionSelect   = "select"
)

// RejectionMessage is sent to anyone but the owner who presses a control
const RejectionMessage = "Sorry, only the command author can interact with it."

const (
	descriptionPreview = 96
	selectPlaceholder  = "Jump to page"
)

// ErrNoResponder is returned when a control runs on a context the pipeline did not prepare
var ErrNoResponder = errors.New("interaction has no responder")

type control func(ctx *core.InteractionContext) error

// NavConfig describes one menu
type NavConfig struct {
	ID        string
	Pages     []*discordgo.MessageEmbed
	Index     int
	OwnerID   string
	Ephemeral bool

	// OnMove runs after the cursor moves and before the page is rendered
	OnMove func(ctx context.Context, index int) error

	// OnDelete runs after the message has been deleted
	OnDelete func(ctx context.Context) error
}

// Nav is the interactive part of a help menu: a page set, a cursor and
// the controls that move it. Controls are fixed when the Nav is built.
type Nav struct {
	id        string
	pages     []*discordgo.MessageEmbed
	cursor    *Cursor
	ownerID   string
	ephemeral bool

	onMove   func(ctx context.Context, index int) error
	onDelete func(ctx context.Context) error

	controls   map[string]control
	components []discordgo.MessageComponent
}

// NewNav builds a Nav and its control set
func NewNav(cfg *NavConfig) (*Nav, error) {
	if cfg == nil {
		return nil, ErrNoPages
	}
	if cfg.ID == "" || strings.Contains(cfg.ID, core.CustomIDSeparator) {
		return nil, fmt.Errorf("invalid menu ID %q", cfg.ID)
	}

	cursor, err := NewCursor(len(cfg.Pages), cfg.Index)
	if err != nil {
		return nil, err
	}

	n := &Nav{
		id:        cfg.ID,
		pages:     cfg.Pages,
		cursor:    cursor,
		ownerID:   cfg.OwnerID,
		ephemeral: cfg.Ephemeral,
		onMove:    cfg.OnMove,
		onDelete:  cfg.OnDelete,
	}
	n.controls, n.components = newControlSet(n)

	return n, nil
}

// newControlSet decides once which controls the menu has and returns
// the action table alongside the rendered rows.
func newControlSet(n *Nav) (map[string]control, []discordgo.MessageComponent) {
	ids := core.NewCustomIDBuilder(Domain)
	controls := make(map[string]control)
	components := builders.NewComponentBuilder()

	paged := len(n.pages) > 1
	if paged {
		controls[ActionPrevious] = n.previous
		components.Button("Previous", discordgo.SuccessButton, ids.Button(ActionPrevious, n.id))

		controls[ActionNext] = n.next
		components.Button("Next", discordgo.PrimaryButton, ids.Button(ActionNext, n.id))
	}

	if !n.ephemeral {
		controls[ActionDelete] = n.delete
		components.Button("Delete", discordgo.DangerButton, ids.Button(ActionDelete, n.id, n.ownerID))
	}

	if paged {
		controls[ActionSelect] = n.jumpTo
		components.SelectMenu(ids.Select(ActionSelect, n.id), selectPlaceholder, selectOptions(n.pages))
	}

	return controls, components.Build()
}

func selectOptions(pages []*discordgo.MessageEmbed) []builders.SelectOption {
	count := len(pages)
	if count > builders.MaxSelectOptions {
		count = builders.MaxSelectOptions
	}

	options := make([]builders.SelectOption, 0, count)
	for i := 0; i < count; i++ {
		page := pages[i]

		label := page.Title
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Page %d", i+1)
		}

		preview := strings.ReplaceAll(builders.Truncate(page.Description, descriptionPreview), "`", "")

		options = append(options, builders.SelectOption{
			Label:       builders.Truncate(label, builders.MaxLabelLength),
			Description: preview + "...",
			Value:       strconv.Itoa(i),
		})
	}
	return options
}

// ID returns the menu ID carried in every custom ID
func (n *Nav) ID() string {
	return n.id
}

// Index returns the current page index
func (n *Nav) Index() int {
	return n.cursor.Index()
}

// Len returns the number of pages
func (n *Nav) Len() int {
	return n.cursor.Len()
}

// Page returns the page at the cursor
func (n *Nav) Page() *discordgo.MessageEmbed {
	return n.pages[n.cursor.Index()]
}

// Components returns the control rows
func (n *Nav) Components() []discordgo.MessageComponent {
	return n.components
}

// HasControl reports whether the menu was built with the action
func (n *Nav) HasControl(action string) bool {
	_, ok := n.controls[action]
	return ok
}

// Dispatch runs the control for action once the presser passes the owner check.
// It returns false when the press was rejected.
func (n *Nav) Dispatch(ctx *core.InteractionContext, action string) (bool, error) {
	allowed, err := CheckOwner(ctx, n.ownerID)
	if err != nil || !allowed {
		return false, err
	}

	run, ok := n.controls[action]
	if !ok {
		return false, core.NewValidationError("That control is not available on this menu.")
	}

	if err := run(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// CheckOwner lets the press through when no owner is bound or the presser is the owner.
// Anyone else gets the rejection message and false.
func CheckOwner(ctx *core.InteractionContext, ownerID string) (bool, error) {
	if ownerID == "" || ctx.UserID == ownerID {
		return true, nil
	}

	responder := ctx.Responder()
	if responder == nil {
		return false, ErrNoResponder
	}

	if err := responder.Respond(core.NewEphemeralResponse(RejectionMessage)); err != nil {
		return false, fmt.Errorf("failed to send rejection: %w", err)
	}
	return false, nil
}

func (n *Nav) previous(ctx *core.InteractionContext) error {
	return n.moved(ctx, n.cursor.Previous())
}

func (n *Nav) next(ctx *core.InteractionContext) error {
	return n.moved(ctx, n.cursor.Next())
}

func (n *Nav) jumpTo(ctx *core.InteractionContext) error {
	values := ctx.GetValues()
	if len(values) == 0 {
		return core.NewValidationError("No page was selected.")
	}

	value, err := strconv.Atoi(values[0])
	if err != nil {
		return core.NewValidationError(fmt.Sprintf("%q is not a page number.", values[0]))
	}

	return n.moved(ctx, n.cursor.JumpTo(value))
}

func (n *Nav) delete(ctx *core.InteractionContext) error {
	responder := ctx.Responder()
	if responder == nil {
		return ErrNoResponder
	}

	if err := responder.DeleteMessage(); err != nil {
		return fmt.Errorf("failed to delete menu message: %w", err)
	}

	if n.onDelete != nil {
		return n.onDelete(ctx.Context)
	}
	return nil
}

func (n *Nav) moved(ctx *core.InteractionContext, index int) error {
	if n.onMove != nil {
		if err := n.onMove(ctx.Context, index); err != nil {
			return err
		}
	}
	return n.render(ctx)
}

// render edits the menu message in place to show the current page
func (n *Nav) render(ctx *core.InteractionContext) error {
	responder := ctx.Responder()
	if responder == nil {
		return ErrNoResponder
	}

	response := core.NewEmbedResponse(n.Page()).
		WithComponents(n.components...).
		AsUpdate()

	return responder.Respond(response)
}

// InitialResponse is the first message of the menu: page 0 at the cursor with every control
func (n *Nav) InitialResponse() *core.Response {
	response := core.NewEmbedResponse(n.Page()).WithComponents(n.components...)
	if n.ephemeral {
		response.AsEphemeral()
	}
	return response
}

// MessageSend is the channel message form of InitialResponse
func (n *Nav) MessageSend() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{n.Page()},
		Components: n.components,
	}
}
