package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logging returns middleware that logs update processing time.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			updateType, chatID := describeUpdate(update)

			next(ctx, b, update)

			slog.Debug("update processed",
				"type", updateType,
				"chat_id", chatID,
				"duration", time.Since(start),
			)
		}
	}
}

func describeUpdate(update *models.Update) (string, int64) {
	switch {
	case update.Message != nil:
		return "message", update.Message.Chat.ID
	case update.CallbackQuery != nil:
		if msg := update.CallbackQuery.Message.Message; msg != nil {
			return "callback_query", msg.Chat.ID
		}
		return "callback_query", 0
	default:
		return "unknown", 0
	}
}
