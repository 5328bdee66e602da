// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "REDIS_DB", "ROOM_TTL", "BOT_DELAY", "UNO_FRESH_DRAWS", "UNO_HAND_SIZE", "UNO_DEFAULT_COLOR", "UNO_ENV", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.RoomTTL)
	assert.Equal(t, 800*time.Millisecond, cfg.BotDelay)
	assert.False(t, cfg.FreshDraws)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, map[string]interface{}{"freshDraws": false}, cfg.RuleOverrides())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ROOM_TTL", "90m")
	t.Setenv("BOT_DELAY", "not-a-duration")
	t.Setenv("UNO_FRESH_DRAWS", "true")
	t.Setenv("UNO_HAND_SIZE", "5")
	t.Setenv("UNO_DEFAULT_COLOR", "Blue")
	t.Setenv("UNO_ENV", "Production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("POSTGRES_USER", "uno")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PORT", "5433")
	t.Setenv("PG_DATABASE", "games")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.RoomTTL)
	assert.Equal(t, 800*time.Millisecond, cfg.BotDelay, "bad values fall back")
	assert.True(t, cfg.FreshDraws)
	assert.Equal(t, map[string]interface{}{
		"freshDraws":   true,
		"handSize":     5,
		"defaultColor": "blue",
	}, cfg.RuleOverrides())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://uno:secret@db:5433/games", cfg.PostgresURL())

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
