package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/kaasla/adcash-influencer-assignment/internal/config"
)

const MaxMessageLen = config.MaxTelegramMessageLen

// MessageSender is the part of *bot.Bot used to post messages.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// SendLongMessage sends a potentially long message, splitting it into parts if needed.
// Falls back to plain text if Markdown parsing fails.
func SendLongMessage(ctx context.Context, s MessageSender, chatID int64, text string, threadID int) error {
	for _, part := range SplitMessage(text, MaxMessageLen) {
		params := &bot.SendMessageParams{
			ChatID:          chatID,
			Text:            part,
			ParseMode:       models.ParseModeMarkdownV1,
			MessageThreadID: threadID,
		}

		if _, err := s.SendMessage(ctx, params); err != nil {
			slog.Warn("markdown send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			if _, err := s.SendMessage(ctx, params); err != nil {
				return fmt.Errorf("send message: %w", err)
			}
		}
	}
	return nil
}
