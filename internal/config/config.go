// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default endpoints of the external services. The Airtable base IDs are
// the two live bases, one per apartment; all of them can be overridden
// through environment variables (mainly for tests).
const (
	defaultAirtableBaseURL = "https://api.airtable.com"
	defaultAirtableTable   = "Income & Expenses"
	defaultBase108         = "appT4yGhNwVtyB8jR"
	defaultBase103         = "appqfgm6p6MSGLfI3"
	defaultExchangeBaseURL = "https://api.exchangerate-api.com"
	defaultHTTPTimeout     = 10 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken   string
	AirtableAPIKey     string
	AirtableBaseURL    string
	AirtableTable      string
	AirtableBases      map[string]string // apartment code -> Airtable base ID
	ExchangeBaseURL    string
	HTTPTimeout        time.Duration
	LogLevel           string
	LogJSON            bool
	WhitelistedUserIDs []int64
	TracingEnabled     bool
	OTLPEndpoint       string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AirtableAPIKey:   os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseURL:  defaultAirtableBaseURL,
		AirtableTable:    defaultAirtableTable,
		ExchangeBaseURL:  defaultExchangeBaseURL,
		HTTPTimeout:      defaultHTTPTimeout,
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogJSON:          os.Getenv("LOG_JSON") == "true",
		TracingEnabled:   os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if v := os.Getenv("AIRTABLE_BASE_URL"); v != "" {
		cfg.AirtableBaseURL = v
	}
	if v := os.Getenv("AIRTABLE_TABLE"); v != "" {
		cfg.AirtableTable = v
	}
	if v := os.Getenv("EXCHANGE_BASE_URL"); v != "" {
		cfg.ExchangeBaseURL = v
	}

	cfg.AirtableBases = map[string]string{
		"108": defaultBase108,
		"103": defaultBase103,
	}
	if v := os.Getenv("AIRTABLE_BASE_108"); v != "" {
		cfg.AirtableBases["108"] = v
	}
	if v := os.Getenv("AIRTABLE_BASE_103"); v != "" {
		cfg.AirtableBases["103"] = v
	}

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	whitelistStr := os.Getenv("WHITELISTED_USER_IDS")
	if whitelistStr != "" {
		for idStr := range strings.SplitSeq(whitelistStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			cfg.WhitelistedUserIDs = append(cfg.WhitelistedUserIDs, id)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.AirtableAPIKey == "" {
		errs = append(errs, "AIRTABLE_API_KEY is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsUserWhitelisted checks whether a Telegram user may use the bot.
// An empty whitelist admits everyone.
func (c *Config) IsUserWhitelisted(userID int64) bool {
	if len(c.WhitelistedUserIDs) == 0 {
		return true
	}
	return slices.Contains(c.WhitelistedUserIDs, userID)
}
