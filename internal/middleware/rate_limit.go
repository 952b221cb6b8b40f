package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Limiter counts messages per chat in fixed one-minute windows.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	counts map[int64]windowCount
}

type windowCount struct {
	start time.Time
	count int
}

func NewLimiter(limit int) *Limiter {
	return &Limiter{
		limit:  limit,
		window: time.Minute,
		now:    time.Now,
		counts: make(map[int64]windowCount),
	}
}

// Allow records one message for chatID and reports whether it is within
// the limit.
func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	wc := l.counts[chatID]
	if now.Sub(wc.start) >= l.window {
		wc = windowCount{start: now}
	}
	wc.count++
	l.counts[chatID] = wc

	// Drop expired windows so idle chats do not accumulate.
	if len(l.counts) > 10_000 {
		for id, c := range l.counts {
			if now.Sub(c.start) >= l.window {
				delete(l.counts, id)
			}
		}
	}

	return wc.count <= l.limit
}

// RateLimit returns middleware that enforces per-minute rate limits.
func RateLimit(limiter *Limiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks or other updates)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !limiter.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID, "limit", limiter.limit)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please wait a moment.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
