package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register wires all command and callback handlers into the bot.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandlerMatchFunc(matchCommand("/start"), h.handleStart)
	h.bot.RegisterHandlerMatchFunc(matchCommand("/help"), h.handleStart)
	h.bot.RegisterHandlerMatchFunc(matchCommand("/link"), h.handleLink)
	h.bot.RegisterHandlerMatchFunc(matchCommand("/offers"), h.handleOffers)

	// Admin
	h.bot.RegisterHandlerMatchFunc(matchCommand("/influencers"), h.handleInfluencers)

	// Offers callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, offersPagePrefix, bot.MatchTypePrefix, h.handleOffersPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)
}

// matchCommand matches messages whose first word is command, optionally
// addressed as command@botname.
func matchCommand(command string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		fields := strings.Fields(update.Message.Text)
		if len(fields) == 0 {
			return false
		}
		name, _, _ := strings.Cut(fields[0], "@")
		return name == command
	}
}

func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})
}
