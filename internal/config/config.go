package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":4000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Database pool
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"2"`

	// Startup
	SeedOnStartup   bool          `env:"SEED_ON_STARTUP" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Telegram bot, disabled when BOT_TOKEN is empty
	BotToken           string  `env:"BOT_TOKEN"`
	DropPendingUpdates bool    `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
	AdminIDs           []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Telegram operator log
	LogTelegramChatID int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicPayouts   int   `env:"LOG_TOPIC_PAYOUTS"`
	LogTopicOffers    int   `env:"LOG_TOPIC_OFFERS"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) BotEnabled() bool {
	return c.BotToken != ""
}

func (c *Config) IsAdmin(telegramID int64) bool {
	return slices.Contains(c.AdminIDs, telegramID)
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
