package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application. Feature flags and
// credentials live here, loaded once at startup; services receive what they
// need at construction and never read the environment at call time.
type AppConfig struct {
	HTTPPort    string
	DatabaseURL string
	LogLevel    string
	Environment string

	// Notification dispatch
	NotifyEnabled  bool
	NotifyMinLevel string // lowest risk level that triggers an alert

	// LINE Messaging API channel
	LineChannelAccessToken string
	LineGroupID            string
	LineChannelSecret      string

	// Telegram alert channel
	TelegramToken       string
	TelegramAlertChatID string

	// History/dashboard gate
	AdminUsername string
	AdminPassword string
	JWTSecret     string

	CronSpecDailySummary string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.HTTPPort = os.Getenv("HTTP_PORT")
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	enabledStr := os.Getenv("ENABLE_NOTIFY")
	if enabledStr == "" {
		cfg.NotifyEnabled = true // Alerts are on unless explicitly disabled
	} else {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ENABLE_NOTIFY: %w", err)
		}
		cfg.NotifyEnabled = enabled
	}

	cfg.NotifyMinLevel = strings.ToLower(os.Getenv("NOTIFY_MIN_LEVEL"))
	if cfg.NotifyMinLevel == "" {
		cfg.NotifyMinLevel = "medium"
	}
	switch cfg.NotifyMinLevel {
	case "low", "medium", "high":
	default:
		return nil, fmt.Errorf("invalid NOTIFY_MIN_LEVEL %q: must be low, medium or high", cfg.NotifyMinLevel)
	}

	// Channel credentials are optional on purpose: a missing credential fails
	// that channel at dispatch time, it does not prevent startup.
	cfg.LineChannelAccessToken = os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")
	cfg.LineGroupID = os.Getenv("LINE_GROUP_ID")
	cfg.LineChannelSecret = os.Getenv("LINE_CHANNEL_SECRET")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramAlertChatID = os.Getenv("TELEGRAM_ALERT_CHAT_ID")

	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" || cfg.Environment == "staging" {
			return nil, fmt.Errorf("JWT_SECRET is not set")
		}
		cfg.JWTSecret = "screening-dev-secret"
	}

	cfg.CronSpecDailySummary = os.Getenv("CRON_SPEC_DAILY_SUMMARY")
	if cfg.CronSpecDailySummary == "" {
		cfg.CronSpecDailySummary = "0 8 * * *" // Default: 08:00 daily
	}

	return cfg, nil
}
