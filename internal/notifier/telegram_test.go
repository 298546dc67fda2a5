package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{}, nil
}

func TestTelegramDeliver(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegram(sender, 20, zap.NewNop())

	require.NoError(t, n.Deliver(context.Background(), 42, "🆕 Новая заявка #mc00042"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Equal(t, "🆕 Новая заявка #mc00042", sender.sent[0].Text)
}

func TestTelegramDeliverError(t *testing.T) {
	sendErr := errors.New("forbidden: bot was blocked by the user")
	n := NewTelegram(&fakeSender{err: sendErr}, 20, zap.NewNop())

	err := n.Deliver(context.Background(), 42, "text")

	assert.ErrorIs(t, err, sendErr)
}

func TestTelegramRateLimitRespectsContext(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegram(sender, 0.5, zap.NewNop())

	require.NoError(t, n.Deliver(context.Background(), 1, "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := n.Deliver(ctx, 2, "second")

	assert.Error(t, err)
	assert.Len(t, sender.sent, 1)
}
