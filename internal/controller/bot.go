package controller

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/motomotoph/mc1lovecamerabot/internal/controller/intake"
	"github.com/motomotoph/mc1lovecamerabot/internal/controller/keyboard"
	"go.uber.org/zap"
)

// Sender методы Telegram API, которые использует контроллер
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// Conversation обработчик диалога
type Conversation interface {
	Handle(ctx context.Context, in intake.Inbound) (intake.Outbound, error)
}

// Queue очередь сообщений по пользователям
type Queue interface {
	Submit(userID int64, job func(ctx context.Context)) error
}

type BotController struct {
	bot          *bot.Bot
	sender       Sender
	conversation Conversation
	queue        Queue
	logger       *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	conversation Conversation,
	queue Queue,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:          botInstance,
		sender:       botInstance,
		conversation: conversation,
		queue:        queue,
		logger:       logger,
	}
}

// RegisterHandlers регистрирует обработчик всех текстовых сообщений
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды тоже идут в диалог: /start, /help и /cancel разбирает intake
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.HandleMessage)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🎬 Новая заявка на оборудование"},
		{Command: "cancel", Description: "❌ Прервать оформление заявки"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.sender.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// HandleMessage ставит сообщение в очередь пользователя
func (c *BotController) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	c.handleUpdate(update)
}

func (c *BotController) handleUpdate(update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	// Только личные сообщения: в группах reply клавиатуры не работают как надо
	if msg.Chat.Type != models.ChatTypePrivate {
		return
	}

	in := intake.Inbound{
		UserID: msg.From.ID,
		Handle: msg.From.Username,
		Text:   msg.Text,
	}
	chatID := msg.Chat.ID
	logger := c.logger.With(
		zap.String("trace_id", uuid.NewString()),
		zap.Int64("update_id", update.ID),
		zap.Int64("telegram_id", in.UserID),
	)

	err := c.queue.Submit(in.UserID, func(ctx context.Context) {
		c.process(ctx, logger, chatID, in)
	})
	if err != nil {
		logger.Warn("Message dropped", zap.Error(err))
	}
}

// process выполняется в очереди пользователя
func (c *BotController) process(ctx context.Context, logger *zap.Logger, chatID int64, in intake.Inbound) {
	out, err := c.conversation.Handle(ctx, in)
	switch {
	case err == nil:
	case errors.Is(err, intake.ErrSessionNotFound):
		logger.Info("Reply outside of session")
	default:
		logger.Error("Failed to handle message", zap.Error(err))
	}

	c.reply(ctx, logger, chatID, out)
}

// reply отправляет ответ и логирует если не удалось
func (c *BotController) reply(ctx context.Context, logger *zap.Logger, chatID int64, out intake.Outbound) {
	if out.Text == "" {
		return
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   out.Text,
	}
	if !out.KeepKeyboard {
		params.ReplyMarkup = keyboard.Markup(out.SuggestedReplies)
	}

	if _, err := c.sender.SendMessage(ctx, params); err != nil {
		logger.Error("Failed to send reply",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
