// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"strconv"

	"mental_screening_service/internal/domain/notification"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements notification.Pusher using gopkg.in/telebot.v3.
// Telegram is a one-way alert channel here: the bot only sends, it never
// handles incoming updates.
type TelebotAdapter struct {
	bot *telebot.Bot
}

// NewTelebotAdapter wraps an initialized bot. A nil bot is allowed and yields
// an unconfigured adapter, so a missing token degrades to a channel-scoped
// dispatch failure instead of a startup error.
func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

func (tba *TelebotAdapter) Configured() error {
	if tba.bot == nil {
		return &notification.MissingConfigError{What: "TELEGRAM_TOKEN"}
	}
	return nil
}

// Push sends a text message to the chat identified by destination, which must
// be a numeric Telegram chat ID.
func (tba *TelebotAdapter) Push(_ context.Context, destination, text string) error {
	chatID, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat ID %q: %w", destination, err)
	}
	_, err = tba.bot.Send(&telebot.Chat{ID: chatID}, text)
	return err
}
