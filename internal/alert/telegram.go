// Package alert pushes ops alerts (new reports, auto-bans) to an admin
// Telegram chat. The bot is optional: without a token every Alert is a
// no-op.
package alert

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"obnavi/backend/internal/logger"
)

// TelegramAlerter sends plain-text alerts to a single admin chat.
type TelegramAlerter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramAlerter builds the alerter. Returns a disabled alerter when
// token is empty.
func NewTelegramAlerter(token string, chatID int64) (*TelegramAlerter, error) {
	if token == "" || chatID == 0 {
		return &TelegramAlerter{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramAlerter{bot: bot, chatID: chatID}, nil
}

// Enabled reports whether alerts actually go anywhere.
func (a *TelegramAlerter) Enabled() bool {
	return a.bot != nil
}

// Alert sends one message. Failures are logged and dropped.
func (a *TelegramAlerter) Alert(text string) {
	if a.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(a.chatID, text)
	if _, err := a.bot.Send(msg); err != nil {
		logger.Log.Warnf("ops alert failed: %v", err)
	}
}
