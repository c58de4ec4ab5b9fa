package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier reports build outcomes to the single operator.
type Notifier interface {
	Notify(text string)
}

// Nop is used when no operator channel is configured.
type Nop struct{}

func (Nop) Notify(string) {}

// Telegram sends operator messages through a bot chat. Delivery failures are
// logged, never surfaced: the notifier must not be able to fail a build.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

func NewTelegram(token, chatID string, log *zap.Logger) (*Telegram, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("telegram chat id %q: %w", chatID, err)
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	return &Telegram{bot: bot, chatID: id, log: log}, nil
}

func (t *Telegram) Notify(text string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.log.Warn("operator notification failed", zap.Error(err))
	}
}
