package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/offerdesk")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.HTTPAddr)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.SeedOnStartup)
	assert.False(t, cfg.BotEnabled())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/offerdesk")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_IDS", "1,42")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_ON_STARTUP", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.BotEnabled())
	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(7))
	assert.True(t, cfg.SeedOnStartup)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/offerdesk")
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})
}
