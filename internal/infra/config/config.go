package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken       string `validate:"required"`
	OwnerTelegramID     int64  `validate:"required"` // The single user allowed to drive the bot
	StoreDriver         string `validate:"oneof=file sqlite postgres"`
	StatePath           string `validate:"required_unless=StoreDriver postgres"`
	DatabaseURL         string `validate:"required_if=StoreDriver postgres"`
	LogLevel            string
	Environment         string
	CronSpecDayRollover string `validate:"required"` // Resets the daily counter at the start of a day
	NotificationIcon    string `validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	ownerIDStr := os.Getenv("OWNER_TELEGRAM_ID")
	if ownerIDStr == "" {
		return nil, fmt.Errorf("OWNER_TELEGRAM_ID is not set")
	}
	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OWNER_TELEGRAM_ID: %w", err)
	}
	cfg.OwnerTelegramID = ownerID

	cfg.StoreDriver = strings.ToLower(os.Getenv("STORE_DRIVER"))
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreDriverFile
	}

	cfg.StatePath = os.Getenv("STATE_PATH")
	if cfg.StatePath == "" {
		switch cfg.StoreDriver {
		case StoreDriverSQLite:
			cfg.StatePath = "data/state.db"
		case StoreDriverFile:
			cfg.StatePath = "data/state.json"
		}
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecDayRollover = os.Getenv("CRON_SPEC_DAY_ROLLOVER")
	if cfg.CronSpecDayRollover == "" {
		cfg.CronSpecDayRollover = "0 0 * * *" // Default: midnight daily
	}

	cfg.NotificationIcon = os.Getenv("NOTIFICATION_ICON")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
