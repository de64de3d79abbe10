package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/menu"
	"github.com/KirkDiggler/pretty-help-bot/internal/helpdocs"
	"github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus"
	mockmenus "github.com/KirkDiggler/pretty-help-bot/internal/repositories/menus/mock"
	"github.com/KirkDiggler/pretty-help-bot/internal/uuid"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakeSender struct {
	channelID string
	sent      []*discordgo.MessageSend
	err       error
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.sent = append(f.sent, data)
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

type HelpHandlerTestSuite struct {
	suite.Suite
	repo    *menus.InMemoryRepository
	handler *HelpHandler
}

func (s *HelpHandlerTestSuite) SetupTest() {
	s.repo = menus.NewInMemory(nil)

	handler, err := NewHelpHandler(&HelpHandlerConfig{
		Catalog: helpdocs.Default(),
		Dispatcher: menu.NewDispatcher(&menu.DispatcherConfig{
			Repository:  s.repo,
			IDGenerator: uuid.NewSequenceGenerator("menu"),
			Timeout:     time.Hour,
			OwnerOnly:   true,
		}),
		Prefix: "!",
	})
	s.Require().NoError(err)
	s.handler = handler
}

func TestHelpHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HelpHandlerTestSuite))
}

func (s *HelpHandlerTestSuite) TestHandleCommand() {
	responder := core.NewMockResponder()
	ctx := core.NewTestInteractionContext().
		AsCommand(HelpCommandName).
		WithResponder(responder).
		InteractionContext

	result, err := s.handler.HandleCommand(ctx)
	s.Require().NoError(err)
	s.Nil(result.Response)

	resp := responder.LastResponse()
	s.Require().NotNil(resp)
	s.Require().Len(resp.Embeds, 1)
	s.Equal(helpdocs.Default().Title, resp.Embeds[0].Title)
	s.NotEmpty(resp.Components)

	state, err := s.repo.Get(context.Background(), "menu-1")
	s.Require().NoError(err)
	s.Equal("test-user-123", state.OwnerID)
	s.Len(state.Pages, 4)
}

func (s *HelpHandlerTestSuite) TestHandleCommand_Topic() {
	responder := core.NewMockResponder()
	ctx := core.NewTestInteractionContext().
		AsCommand(HelpCommandName).
		WithParam("topic", "menus").
		WithResponder(responder).
		InteractionContext

	_, err := s.handler.HandleCommand(ctx)
	s.Require().NoError(err)

	state, err := s.repo.Get(context.Background(), "menu-1")
	s.Require().NoError(err)
	s.Len(state.Pages, 1)
}

func (s *HelpHandlerTestSuite) TestHandleCommand_UnknownTopic() {
	responder := core.NewMockResponder()
	ctx := core.NewTestInteractionContext().
		AsCommand(HelpCommandName).
		WithParam("topic", "dragons").
		WithResponder(responder).
		InteractionContext

	_, err := s.handler.HandleCommand(ctx)

	message, ok := core.UserMessage(err)
	s.True(ok)
	s.Contains(message, "Unknown help topic")
	s.Contains(message, "Menus")
	s.Empty(responder.Responses)
	s.Zero(s.repo.Len())
}

func (s *HelpHandlerTestSuite) TestHandleComponent_Navigates() {
	ctx := core.NewTestInteractionContext().
		AsCommand(HelpCommandName).
		WithResponder(core.NewMockResponder()).
		InteractionContext
	_, err := s.handler.HandleCommand(ctx)
	s.Require().NoError(err)

	responder := core.NewMockResponder()
	press := core.NewTestInteractionContext().
		AsComponent("pretty_help:next:menu-1").
		WithResponder(responder).
		InteractionContext

	result, err := s.handler.HandleComponent(press)
	s.Require().NoError(err)
	s.Nil(result.Response)

	resp := responder.LastResponse()
	s.Require().NotNil(resp)
	s.True(resp.Update)

	state, err := s.repo.Get(context.Background(), "menu-1")
	s.Require().NoError(err)
	s.Equal(1, state.Index)
}

func (s *HelpHandlerTestSuite) TestHandleComponent_BadCustomID() {
	press := core.NewTestInteractionContext().
		AsComponent("garbage").
		WithResponder(core.NewMockResponder()).
		InteractionContext

	_, err := s.handler.HandleComponent(press)
	s.Error(err)
}

func (s *HelpHandlerTestSuite) TestHandleMessage() {
	sender := &fakeSender{}
	handled, err := s.handler.HandleMessage(context.Background(), sender, &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   "!help",
			ChannelID: "channel-1",
			Author:    &discordgo.User{ID: "author-1"},
		},
	})
	s.Require().NoError(err)
	s.True(handled)

	s.Equal("channel-1", sender.channelID)
	s.Require().Len(sender.sent, 1)
	s.Len(sender.sent[0].Embeds, 1)

	state, err := s.repo.Get(context.Background(), "menu-1")
	s.Require().NoError(err)
	s.Equal("author-1", state.OwnerID)
	s.False(state.Ephemeral)
}

func (s *HelpHandlerTestSuite) TestHandleMessage_UnknownTopic() {
	sender := &fakeSender{}
	handled, err := s.handler.HandleMessage(context.Background(), sender, &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   "!help dragons",
			ChannelID: "channel-1",
			Author:    &discordgo.User{ID: "author-1"},
		},
	})
	s.Require().NoError(err)
	s.True(handled)
	s.Require().Len(sender.sent, 1)
	s.Contains(sender.sent[0].Content, "Unknown help topic")
	s.Zero(s.repo.Len())
}

func (s *HelpHandlerTestSuite) TestHandleMessage_Ignored() {
	tests := []struct {
		name string
		msg  *discordgo.Message
	}{
		{name: "other command", msg: &discordgo.Message{Content: "!ping", Author: &discordgo.User{ID: "a"}}},
		{name: "no prefix", msg: &discordgo.Message{Content: "help", Author: &discordgo.User{ID: "a"}}},
		{name: "longer word", msg: &discordgo.Message{Content: "!helpme", Author: &discordgo.User{ID: "a"}}},
		{name: "bot author", msg: &discordgo.Message{Content: "!help", Author: &discordgo.User{ID: "b", Bot: true}}},
		{name: "no author", msg: &discordgo.Message{Content: "!help"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			sender := &fakeSender{}
			handled, err := s.handler.HandleMessage(context.Background(), sender, &discordgo.MessageCreate{Message: tt.msg})
			s.NoError(err)
			s.False(handled)
			s.Empty(sender.sent)
		})
	}
}

func (s *HelpHandlerTestSuite) TestCommand() {
	cmd := s.handler.Command()
	s.Equal("help", cmd.Name)
	s.Require().Len(cmd.Options, 1)
	s.False(cmd.Options[0].Required)
	s.Len(cmd.Options[0].Choices, 3)
}

func TestNewHelpHandler_Validation(t *testing.T) {
	_, err := NewHelpHandler(nil)
	assert.Error(t, err)

	_, err = NewHelpHandler(&HelpHandlerConfig{Catalog: helpdocs.Default()})
	assert.Error(t, err)
}

func TestHelpHandler_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockmenus.NewMockRepository(ctrl)

	handler, err := NewHelpHandler(&HelpHandlerConfig{
		Catalog:    helpdocs.Default(),
		Dispatcher: menu.NewDispatcher(&menu.DispatcherConfig{Repository: repo}),
	})
	require.NoError(t, err)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	ctx := core.NewTestInteractionContext().
		AsCommand(HelpCommandName).
		WithResponder(core.NewMockResponder()).
		InteractionContext

	_, err = handler.HandleCommand(ctx)
	assert.Equal(t, core.ErrorCodeInternal, core.ErrorCode(err))
}
