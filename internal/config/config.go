// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "EVIDENCA"

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Config struct {
	Store StoreConfig
	HTTP  HTTPConfig
	Log   LogConfig
	Redis RedisConfig
	Auth  AuthConfig
}

type StoreConfig struct {
	Path string `envconfig:"EVIDENCA_DB" default:"evidenca.sqlite3"`
}

type HTTPConfig struct {
	Addr string `envconfig:"EVIDENCA_ADDR" default:"127.0.0.1:8080"`
}

type LogConfig struct {
	Level  string `envconfig:"EVIDENCA_LOG_LEVEL" default:"info"`
	Format string `envconfig:"EVIDENCA_LOG_FORMAT" default:"json"`
	File   string `envconfig:"EVIDENCA_LOG_FILE"`
}

// RedisConfig enables the Redis event publisher when URL is set.
type RedisConfig struct {
	URL     string `envconfig:"EVIDENCA_REDIS_URL"`
	Channel string `envconfig:"EVIDENCA_REDIS_CHANNEL" default:"evidenca.events"`
}

type AuthConfig struct {
	// JWTSecret overrides the secret stored in the store's settings.
	JWTSecret string `envconfig:"EVIDENCA_JWT_SECRET"`
	AdminUser string `envconfig:"EVIDENCA_ADMIN_USER" default:"admin"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatConsole {
		return fmt.Errorf("invalid EVIDENCA_LOG_FORMAT %q: want json or console", c.Log.Format)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("EVIDENCA_DB must not be empty")
	}
	if strings.TrimSpace(c.Auth.AdminUser) == "" {
		return fmt.Errorf("EVIDENCA_ADMIN_USER must not be empty")
	}
	return nil
}
