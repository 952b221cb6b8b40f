package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/kaasla/adcash-influencer-assignment/internal/config"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	"github.com/kaasla/adcash-influencer-assignment/internal/middleware"
	tg "github.com/kaasla/adcash-influencer-assignment/internal/telegram"
)

const (
	offersPagePrefix = "offers_page"

	// Telegram caps callback data at 64 bytes.
	maxCallbackData = 64

	// maxSearchBytes leaves room for the prefix and a page number in the
	// callback data that carries the search between pages.
	maxSearchBytes = maxCallbackData - len(offersPagePrefix) - 8
)

func (h *Handler) handleOffers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	inf := middleware.GetInfluencer(ctx)
	if inf == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Link your account first: /link <email>",
		})
		return
	}

	search := commandArgs(update.Message.Text)
	if len(search) > maxSearchBytes {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Search text is too long, please shorten it.",
		})
		return
	}

	h.sendOffersPage(ctx, b, chatID, inf, search, 0, 0)
}

func (h *Handler) handleOffersPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	inf := middleware.GetInfluencer(ctx)
	msg := update.CallbackQuery.Message.Message
	if inf == nil || msg == nil {
		return
	}

	page, search, ok := parseOffersPageData(update.CallbackQuery.Data)
	if !ok {
		return
	}
	h.sendOffersPage(ctx, b, msg.Chat.ID, inf, search, page, msg.ID)
}

// sendOffersPage sends a page of resolved offers, editing messageID in
// place when it is non-zero.
func (h *Handler) sendOffersPage(ctx context.Context, b *bot.Bot, chatID int64, inf *domain.Influencer, search string, page, messageID int) {
	offers, err := h.influencerService.Offers(ctx, inf.ID, search)
	if err != nil {
		slog.Error("list influencer offers", "error", err, "influencer_id", inf.ID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to load offers.",
		})
		return
	}

	text, keyboard := buildOffersPage(offers, search, page)

	if messageID != 0 {
		params := &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      text,
			ParseMode: models.ParseModeMarkdownV1,
		}
		if keyboard != nil {
			params.ReplyMarkup = keyboard
		}
		b.EditMessageText(ctx, params)
		return
	}

	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	b.SendMessage(ctx, params)
}

// buildOffersPage renders one page of offers. The keyboard is nil when
// everything fits on a single page.
func buildOffersPage(offers []domain.ResolvedOffer, search string, page int) (string, *models.InlineKeyboardMarkup) {
	if len(offers) == 0 {
		if search != "" {
			return fmt.Sprintf("No offers match \"%s\".", tg.EscapeMarkdown(search)), nil
		}
		return "No offers available yet.", nil
	}

	totalPages := (len(offers) + config.OffersPerPage - 1) / config.OffersPerPage
	page = max(0, min(page, totalPages-1))

	start := page * config.OffersPerPage
	end := min(start+config.OffersPerPage, len(offers))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📢 *Your offers* (%d)\n", len(offers)))
	if search != "" {
		sb.WriteString(fmt.Sprintf("🔎 %s\n", tg.EscapeMarkdown(search)))
	}
	for _, o := range offers[start:end] {
		sb.WriteString("\n")
		sb.WriteString(tg.FormatResolvedOffer(o, config.DescriptionPreviewLen))
	}

	if totalPages == 1 {
		return sb.String(), nil
	}
	return sb.String(), tg.InlineKeyboard(tg.PaginationRow(page, totalPages, offersPagePrefix, ":"+search))
}

// parseOffersPageData parses "offers_page_<n>:<search>".
func parseOffersPageData(data string) (int, string, bool) {
	rest, ok := strings.CutPrefix(data, offersPagePrefix+"_")
	if !ok {
		return 0, "", false
	}
	rawPage, search, _ := strings.Cut(rest, ":")
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 0 {
		return 0, "", false
	}
	return page, search, true
}
