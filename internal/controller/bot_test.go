package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/motomotoph/mc1lovecamerabot/internal/controller/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent     []*bot.SendMessageParams
	commands []models.BotCommand
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params)
	return &models.Message{}, nil
}

func (f *fakeSender) SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	f.commands = params.Commands
	return true, nil
}

type fakeConversation struct {
	got []intake.Inbound
	out intake.Outbound
	err error
}

func (f *fakeConversation) Handle(ctx context.Context, in intake.Inbound) (intake.Outbound, error) {
	f.got = append(f.got, in)
	return f.out, f.err
}

// inlineQueue выполняет задачу сразу
type inlineQueue struct{ closed bool }

func (q *inlineQueue) Submit(userID int64, job func(ctx context.Context)) error {
	if q.closed {
		return errors.New("closed")
	}
	job(context.Background())
	return nil
}

func newController(conv *fakeConversation, queue Queue) (*BotController, *fakeSender) {
	sender := &fakeSender{}
	return &BotController{
		sender:       sender,
		conversation: conv,
		queue:        queue,
		logger:       zap.NewNop(),
	}, sender
}

func privateUpdate(text string) *models.Update {
	return &models.Update{
		ID: 1001,
		Message: &models.Message{
			Text: text,
			From: &models.User{ID: 7, Username: "annlee"},
			Chat: models.Chat{ID: 70, Type: models.ChatTypePrivate},
		},
	}
}

func TestHandleUpdateRepliesWithKeyboard(t *testing.T) {
	conv := &fakeConversation{out: intake.Outbound{
		UserID:           7,
		Text:             "📋 Сводка заявки",
		SuggestedReplies: [][]string{{intake.LabelConfirm, intake.LabelEdit}},
	}}
	c, sender := newController(conv, &inlineQueue{})

	c.handleUpdate(privateUpdate("Ann Lee"))

	require.Len(t, conv.got, 1)
	assert.Equal(t, intake.Inbound{UserID: 7, Handle: "annlee", Text: "Ann Lee"}, conv.got[0])

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(70), sender.sent[0].ChatID)
	markup, ok := sender.sent[0].ReplyMarkup.(*models.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, intake.LabelConfirm, markup.Keyboard[0][0].Text)
}

func TestHandleUpdateRemovesKeyboardAndKeepsIt(t *testing.T) {
	conv := &fakeConversation{out: intake.Outbound{Text: "✅ Ваша заявка принята!"}}
	c, sender := newController(conv, &inlineQueue{})

	c.handleUpdate(privateUpdate(intake.LabelConfirm))
	_, ok := sender.sent[0].ReplyMarkup.(*models.ReplyKeyboardRemove)
	assert.True(t, ok)

	conv.out = intake.Outbound{Text: "📚 Справка", KeepKeyboard: true}
	c.handleUpdate(privateUpdate("/help"))
	assert.Nil(t, sender.sent[1].ReplyMarkup)
}

func TestHandleUpdateRepliesOnError(t *testing.T) {
	conv := &fakeConversation{
		out: intake.Outbound{Text: "❌ Сессия не найдена"},
		err: intake.ErrSessionNotFound,
	}
	c, sender := newController(conv, &inlineQueue{})

	c.handleUpdate(privateUpdate("hello"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "❌ Сессия не найдена", sender.sent[0].Text)
}

func TestHandleUpdateIgnoresNonPrivateAndEmpty(t *testing.T) {
	conv := &fakeConversation{out: intake.Outbound{Text: "x"}}
	c, sender := newController(conv, &inlineQueue{})

	group := privateUpdate("Ann Lee")
	group.Message.Chat.Type = models.ChatTypeGroup
	c.handleUpdate(group)
	c.handleUpdate(&models.Update{ID: 2})
	c.handleUpdate(privateUpdate(""))

	assert.Empty(t, conv.got)
	assert.Empty(t, sender.sent)
}

func TestHandleUpdateClosedQueue(t *testing.T) {
	conv := &fakeConversation{out: intake.Outbound{Text: "x"}}
	c, sender := newController(conv, &inlineQueue{closed: true})

	c.handleUpdate(privateUpdate("Ann Lee"))

	assert.Empty(t, conv.got)
	assert.Empty(t, sender.sent)
}

func TestSetCommands(t *testing.T) {
	c, sender := newController(&fakeConversation{}, &inlineQueue{})

	require.NoError(t, c.setCommands(context.Background()))

	require.Len(t, sender.commands, 3)
	assert.Equal(t, "start", sender.commands[0].Command)
}
