package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	WhatsAppStoreURL   string
	WhatsAppSQLitePath string
	Port               string
	Env                string
	LogLevel           string
	Timezone           string

	// AI
	AIEnabled         bool
	AIFallbackEnabled bool
	AIMaxRetries      int
	AIRetryBackoff    time.Duration
	AITimeout         time.Duration
	AIMaxHistory      int

	// Conversation
	RateLimitWindow      time.Duration
	SessionStore         string
	RedisURL             string
	SessionTTL           time.Duration
	SessionSweepSchedule string
	MaxPartySize         int
	DefaultUnitPrice     int64
	TypingDelay          time.Duration

	// Ledger
	OrderNodeID        int64
	RabbitMQURL        string
	BookingEventsQueue string
	SuperAdminPhone    string

	// Admin API
	AdminJWTSecret string
	AdminTokenTTL  time.Duration
	AuditEnabled   bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		WhatsAppStoreURL:   os.Getenv("WHATSAPP_STORE_URL"),
		WhatsAppSQLitePath: getEnv("WHATSAPP_SQLITE_PATH", "store.db"),
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("TIMEZONE", "Africa/Dar_es_Salaam"),

		AIEnabled:         getEnvBool("AI_ENABLED", true),
		AIFallbackEnabled: getEnvBool("AI_FALLBACK_ENABLED", true),
		AIMaxRetries:      getEnvInt("AI_MAX_RETRIES", 2),
		AIRetryBackoff:    getEnvDuration("AI_RETRY_BACKOFF", time.Second),
		AITimeout:         getEnvDuration("AI_TIMEOUT", 30*time.Second),
		AIMaxHistory:      getEnvInt("AI_MAX_HISTORY", 10),

		RateLimitWindow:      getEnvDuration("RATE_LIMIT_WINDOW", time.Second),
		SessionStore:         strings.ToLower(getEnv("SESSION_STORE", "memory")),
		RedisURL:             os.Getenv("REDIS_URL"),
		SessionTTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "0 */15 * * * *"),
		MaxPartySize:         getEnvInt("MAX_PARTY_SIZE", 50),
		DefaultUnitPrice:     int64(getEnvInt("DEFAULT_UNIT_PRICE", 50)),
		TypingDelay:          getEnvDuration("TYPING_DELAY", 0),

		OrderNodeID:        int64(getEnvInt("ORDER_NODE_ID", 1)),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		BookingEventsQueue: getEnv("BOOKING_EVENTS_QUEUE", "booking.events"),
		SuperAdminPhone:    os.Getenv("SUPER_ADMIN_PHONE"),

		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		AdminTokenTTL:  getEnvDuration("ADMIN_TOKEN_TTL", 24*time.Hour),
		AuditEnabled:   getEnvBool("AUDIT_ENABLED", true),
	}

	if cfg.WhatsAppStoreURL == "" {
		// Default to main database if not specified
		cfg.WhatsAppStoreURL = cfg.DatabaseURL
	}

	return cfg
}

// Location returns the configured timezone, or local time when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("⚠️ Unknown TIMEZONE %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using default %t", key, v, fallback)
		return fallback
	}
	return b
}

// getEnvDuration accepts Go durations ("1s", "24h") or plain milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("⚠️ Invalid %s=%q, using default %s", key, v, fallback)
	return fallback
}
