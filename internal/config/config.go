package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	BotToken     string        `envconfig:"BOT_TOKEN"`
	APIBaseURL   string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	AdminContact string        `envconfig:"ADMIN_CONTACT" default:"@artibuk"`
	PollTimeout  time.Duration `envconfig:"POLL_TIMEOUT" default:"10s"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// Ignore error if .env does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BotToken, validation.Required),
		validation.Field(&c.APIBaseURL, validation.Required, is.URL),
		validation.Field(&c.AdminContact, validation.Required),
		validation.Field(&c.PollTimeout, validation.Required, validation.Min(time.Second)),
	)
}
