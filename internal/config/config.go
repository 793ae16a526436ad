package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken string        `mapstructure:"TELEGRAM_TOKEN"`
	Environment   string        `mapstructure:"ENV"`
	SignInLatency time.Duration `mapstructure:"SIGNIN_LATENCY"`
	OpsAddr       string        `mapstructure:"OPS_ADDR"`     // empty disables the ops server
	CatalogPath   string        `mapstructure:"CATALOG_PATH"` // empty uses the embedded seed.yaml
	RateLimit     float64       `mapstructure:"RATE_LIMIT"`   // updates per second per chat
	RateBurst     int           `mapstructure:"RATE_BURST"`
}

var keys = []string{
	"TELEGRAM_TOKEN",
	"ENV",
	"SIGNIN_LATENCY",
	"OPS_ADDR",
	"CATALOG_PATH",
	"RATE_LIMIT",
	"RATE_BURST",
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables only.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.SetDefault("ENV", "development")
	v.SetDefault("SIGNIN_LATENCY", "1s")
	v.SetDefault("RATE_LIMIT", 2.0)
	v.SetDefault("RATE_BURST", 10)
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.SignInLatency < 0 {
		return nil, fmt.Errorf("SIGNIN_LATENCY must not be negative")
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive")
	}

	return &cfg, nil
}

// RequireTelegram checks the settings the bot command cannot run without.
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}
