package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	tg "github.com/kaasla/adcash-influencer-assignment/internal/telegram"
)

func (h *Handler) handleLink(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID
	email := commandArgs(update.Message.Text)
	if email == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /link <email>",
		})
		return
	}

	inf, err := h.influencerService.LinkChat(ctx, chatID, email)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrInfluencerNotFound):
			msg = "❌ No influencer is registered with that email."
		case errors.Is(err, domain.ErrInvalidInput):
			msg = "❌ This chat cannot be linked right now."
		default:
			msg = "❌ Failed to link your account."
			slog.Error("link influencer chat", "error", err, "chat_id", chatID)
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   msg,
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      fmt.Sprintf("✅ Linked to *%s*. Use /offers to see your payouts.", tg.EscapeMarkdown(inf.Name)),
		ParseMode: models.ParseModeMarkdownV1,
	})
}
