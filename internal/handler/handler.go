package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/config"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

// InfluencerService is what the bot needs from service.InfluencerService.
type InfluencerService interface {
	List(ctx context.Context) ([]domain.Influencer, error)
	LinkChat(ctx context.Context, chatID int64, email string) (*domain.Influencer, error)
	Offers(ctx context.Context, influencerID uuid.UUID, search string) ([]domain.ResolvedOffer, error)
}

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot               *bot.Bot
	cfg               *config.Config
	influencerService InfluencerService
	botUsername       string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot               *bot.Bot
	Cfg               *config.Config
	InfluencerService InfluencerService
	BotUsername       string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:               deps.Bot,
		cfg:               deps.Cfg,
		influencerService: deps.InfluencerService,
		botUsername:       deps.BotUsername,
	}
}
