package config

import "time"

const (
	// HTTP server
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 15 * time.Second
	WriteTimeout      = 30 * time.Second
	IdleTimeout       = 60 * time.Second
	MaxRequestBody    = 1 << 20

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Telegram log send timeout
	TelegramLogTimeout = 10 * time.Second

	// Bot messages per chat per minute
	RateLimitPerMinute = 20

	// Offers per page in the bot
	OffersPerPage = 5

	// Description preview length in the bot, in runes
	DescriptionPreviewLen = 160
)
