package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/kaasla/adcash-influencer-assignment/internal/middleware"
	tg "github.com/kaasla/adcash-influencer-assignment/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.Chat.Type != "private" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("Message me privately: @%s", h.botUsername),
		})
		return
	}

	greeting := "👋 Hi!"
	if inf := middleware.GetInfluencer(ctx); inf != nil {
		greeting = fmt.Sprintf("👋 Hi, %s!", tg.EscapeMarkdown(inf.Name))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      greeting + "\n\n" + helpText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

var helpText = strings.Join([]string{
	"📋 *Commands:*",
	"/link <email> - Link this chat to your influencer account",
	"/offers - List your offers and payouts",
	"/offers <text> - Search offers by title",
	"/help - Show this message",
}, "\n")

// commandArgs returns the text after the command word.
func commandArgs(text string) string {
	_, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(args)
}
