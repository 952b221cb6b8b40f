package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

type ctxKey string

const InfluencerKey ctxKey = "influencer"

// GetInfluencer extracts the linked influencer from context.
func GetInfluencer(ctx context.Context) *domain.Influencer {
	inf, ok := ctx.Value(InfluencerKey).(*domain.Influencer)
	if !ok {
		return nil
	}
	return inf
}

// WithInfluencer stores inf in ctx.
func WithInfluencer(ctx context.Context, inf *domain.Influencer) context.Context {
	return context.WithValue(ctx, InfluencerKey, inf)
}

// InfluencerFinder looks up the influencer linked to a chat.
type InfluencerFinder interface {
	FindByChatID(ctx context.Context, chatID int64) (*domain.Influencer, error)
}

// InfluencerLoader returns middleware that loads the influencer linked to
// the chat into context. Unlinked chats pass through without one.
func InfluencerLoader(finder InfluencerFinder) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			_, chatID := describeUpdate(update)
			if chatID == 0 {
				next(ctx, b, update)
				return
			}

			inf, err := finder.FindByChatID(ctx, chatID)
			switch {
			case err == nil:
				ctx = WithInfluencer(ctx, inf)
			case !errors.Is(err, domain.ErrInfluencerNotFound):
				slog.Error("load influencer", "error", err, "chat_id", chatID)
			}

			next(ctx, b, update)
		}
	}
}
