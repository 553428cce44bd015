package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type APIConfig struct {
	Port int `yaml:"port"`
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// MiniAppConfig holds the public base URL the Mini App and the API are served
// from. The bot builds WebApp buttons and profile deep links against it.
type MiniAppConfig struct {
	PublicURL string `yaml:"public_url"`
}

type Config struct {
	API      APIConfig      `yaml:"api"`
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	MiniApp  MiniAppConfig  `yaml:"miniapp"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, then applies environment overrides.
// A missing file is not an error: deployments may configure everything through
// DATABASE_URL, TELEGRAM_BOT_TOKEN and PUBLIC_BASE_URL alone.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only configuration
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// environment overrides
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.MiniApp.PublicURL = v
	}

	// defaults
	if cfg.API.Port <= 0 {
		cfg.API.Port = 8080
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 4
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// ValidateAPI checks the settings the API process cannot run without.
func (c *Config) ValidateAPI() error {
	if c.Database.URL == "" {
		return errors.New("database.url (or DATABASE_URL) is required")
	}
	return nil
}

// ValidateBot checks the settings the bot process cannot run without.
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" {
		return errors.New("bot.token (or TELEGRAM_BOT_TOKEN) is required")
	}
	if c.MiniApp.PublicURL == "" {
		return errors.New("miniapp.public_url (or PUBLIC_BASE_URL) is required")
	}
	return nil
}
