// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// load .env before anything reads the environment
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port     string
	Env      string // "development" or "production"
	LogLevel string

	RedisAddr string
	RedisDB   int
	RoomTTL   time.Duration // expiry of a room record, refreshed on every write

	PGUser     string
	PGPassword string
	PGHost     string
	PGPort     string
	PGDatabase string

	BotDelay      time.Duration
	InviteBaseURL string

	// game rule overrides; zero values keep the defaults
	FreshDraws   bool
	HandSize     int
	DefaultColor string

	TokenExpireTime time.Duration
}

// Load reads the configuration. Unset or unparsable values fall back to defaults.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("UNO_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RoomTTL:   getEnvDuration("ROOM_TTL", 24*time.Hour),

		PGUser:     getEnv("POSTGRES_USER", "postgres"),
		PGPassword: getEnv("POSTGRES_PASSWORD", ""),
		PGHost:     getEnv("PG_HOST", "localhost"),
		PGPort:     getEnv("PG_PORT", "5432"),
		PGDatabase: getEnv("PG_DATABASE", "uno"),

		BotDelay:      getEnvDuration("BOT_DELAY", 800*time.Millisecond),
		InviteBaseURL: getEnv("INVITE_BASE_URL", "http://localhost:8080/uno"),

		FreshDraws:   getEnvBool("UNO_FRESH_DRAWS", false),
		HandSize:     getEnvInt("UNO_HAND_SIZE", 0),
		DefaultColor: strings.ToLower(getEnv("UNO_DEFAULT_COLOR", "")),

		TokenExpireTime: getEnvDuration("TOKEN_EXPIRE_TIME", 24*time.Hour),
	}
}

// PostgresURL builds the connection string for pgx.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// RuleOverrides returns the rule settings from the environment in the form
// game.Rules.Update takes. Unset values are left out.
func (c *Config) RuleOverrides() map[string]interface{} {
	overrides := map[string]interface{}{"freshDraws": c.FreshDraws}
	if c.HandSize != 0 {
		overrides["handSize"] = c.HandSize
	}
	if c.DefaultColor != "" {
		overrides["defaultColor"] = c.DefaultColor
	}
	return overrides
}

// IsProduction is true when UNO_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// NewLogger builds the process logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if c.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration accepts Go duration syntax ("800ms", "24h").
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
