package notifier

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MessageSender отправка сообщения в Telegram, реализуется *bot.Bot
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram доставляет уведомления администраторам с ограничением частоты
type Telegram struct {
	sender  MessageSender
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewTelegram создаёт нотификатор; perSecond сообщений в секунду
func NewTelegram(sender MessageSender, perSecond float64, logger *zap.Logger) *Telegram {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Telegram{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

// Deliver отправляет одно сообщение; ожидание лимита ограничено ctx
func (t *Telegram) Deliver(ctx context.Context, recipientID int64, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait rate limit: %w", err)
	}

	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: recipientID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send message to %d: %w", recipientID, err)
	}

	t.logger.Debug("Notification delivered", zap.Int64("recipient_id", recipientID))
	return nil
}
