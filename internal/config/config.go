package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	Port        string
	LogLevel    string
	Environment string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	TranslationAPIURL string
	TranslationAPIKey string

	// Optional ops alerting; the Telegram bot stays disabled when the token
	// is empty.
	TelegramToken   string
	AdminTelegramID int64

	MorningFlushCron string
	WeeklyFlushCron  string
}

// DSN builds the PostgreSQL connection string.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load reads configuration from environment variables and .env file (if
// present). godotenv.Load will not override existing env variables.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Port = getEnv("PORT", "8080")
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBUser = os.Getenv("DB_USER")
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is not set")
	}
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is not set")
	}
	cfg.DBPort = getEnv("DB_PORT", "5432")

	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		n, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	cfg.CheckoutSuccessURL = getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/credits/success")
	cfg.CheckoutCancelURL = getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/credits")

	cfg.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.SupabaseServiceKey = os.Getenv("SUPABASE_SERVICE_KEY")
	cfg.SupabaseBucket = getEnv("SUPABASE_BUCKET", "uploads")

	cfg.TranslationAPIURL = os.Getenv("TRANSLATION_API_URL")
	cfg.TranslationAPIKey = os.Getenv("TRANSLATION_API_KEY")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if idStr := os.Getenv("ADMIN_TELEGRAM_ID"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
		cfg.AdminTelegramID = id
	}

	// Defaults are Asia/Tokyo wall-clock times; the scheduler runs in JST.
	cfg.MorningFlushCron = getEnv("CRON_SPEC_MORNING_FLUSH", "0 9 * * *")
	cfg.WeeklyFlushCron = getEnv("CRON_SPEC_WEEKLY_FLUSH", "0 9 * * 1")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
