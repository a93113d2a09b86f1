package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rkarim/mobiledokan-scraper-go/pkg/errors"
)

type Config struct {
	Scrape   ScrapeConfig
	Browser  BrowserConfig
	Output   OutputConfig
	Image    ImageConfig
	Telegram TelegramConfig
	Logging  LoggingConfig
}

type ScrapeConfig struct {
	TargetURL       string
	ListingTimeout  time.Duration
	DetailTimeout   time.Duration
	SelectorTimeout time.Duration
}

type BrowserConfig struct {
	Headless  bool
	UserAgent string
}

type OutputConfig struct {
	JSONDir    string
	ImageDir   string
	LedgerPath string
}

type ImageConfig struct {
	TargetWidth int
	Timeout     time.Duration
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

type LoggingConfig struct {
	Level string
	File  string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scrape: ScrapeConfig{
			TargetURL:       getEnv("TARGET_URL", "https://www.mobiledokan.co/products/"),
			ListingTimeout:  time.Duration(getEnvInt("LISTING_TIMEOUT_SECONDS", 120)) * time.Second,
			DetailTimeout:   time.Duration(getEnvInt("DETAIL_TIMEOUT_SECONDS", 90)) * time.Second,
			SelectorTimeout: time.Duration(getEnvInt("SELECTOR_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Browser: BrowserConfig{
			Headless:  getEnvBool("HEADLESS_MODE", true),
			UserAgent: getEnv("USER_AGENT", defaultUserAgent),
		},
		Output: OutputConfig{
			JSONDir:    getEnv("JSON_OUTPUT_DIR", "mobiles"),
			ImageDir:   getEnv("IMAGE_OUTPUT_DIR", "images"),
			LedgerPath: getEnv("PROCESSED_LINKS_CSV", "processed_links.csv"),
		},
		Image: ImageConfig{
			TargetWidth: getEnvInt("IMAGE_WIDTH", 300),
			Timeout:     time.Duration(getEnvInt("IMAGE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scrape.TargetURL == "" {
		return errors.NewValidationError("TARGET_URL is required", "TARGET_URL", c.Scrape.TargetURL)
	}
	if c.Output.JSONDir == "" {
		return errors.NewValidationError("JSON_OUTPUT_DIR is required", "JSON_OUTPUT_DIR", c.Output.JSONDir)
	}
	if c.Output.ImageDir == "" {
		return errors.NewValidationError("IMAGE_OUTPUT_DIR is required", "IMAGE_OUTPUT_DIR", c.Output.ImageDir)
	}
	if c.Output.LedgerPath == "" {
		return errors.NewValidationError("PROCESSED_LINKS_CSV is required", "PROCESSED_LINKS_CSV", c.Output.LedgerPath)
	}
	if c.Image.TargetWidth <= 0 {
		return errors.NewValidationError("IMAGE_WIDTH must be positive", "IMAGE_WIDTH", c.Image.TargetWidth)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
