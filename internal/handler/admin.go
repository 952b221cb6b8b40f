package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	tg "github.com/kaasla/adcash-influencer-assignment/internal/telegram"
)

func (h *Handler) handleInfluencers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if !h.cfg.IsAdmin(update.Message.From.ID) {
		return
	}

	chatID := update.Message.Chat.ID
	influencers, err := h.influencerService.List(ctx)
	if err != nil {
		slog.Error("list influencers", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to load influencers.",
		})
		return
	}

	if err := tg.SendLongMessage(ctx, b, chatID, formatInfluencerList(influencers), 0); err != nil {
		slog.Error("send influencer list", "error", err, "chat_id", chatID)
	}
}

func formatInfluencerList(influencers []domain.Influencer) string {
	if len(influencers) == 0 {
		return "No influencers registered."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 *Influencers* (%d)\n\n", len(influencers)))
	for _, inf := range influencers {
		status := "not linked"
		if inf.TelegramChatID != nil {
			status = "linked"
		}
		sb.WriteString(fmt.Sprintf("• %s, %s (%s)\n", tg.EscapeMarkdown(inf.Name), tg.EscapeMarkdown(inf.Email), status))
	}
	return sb.String()
}
