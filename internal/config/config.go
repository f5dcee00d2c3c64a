package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAdminKey = "analytics"

type Config struct {
	Port              int
	DatabasePath      string
	AdminKey          string
	PlayerCatalogPath string
	SessionLifetime   time.Duration
	LogLevel          slog.Level
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:              10000,
		DatabasePath:      "draft_pool.db",
		AdminKey:          DefaultAdminKey,
		PlayerCatalogPath: getenv("PLAYER_CATALOG_PATH"),
		SessionLifetime:   24 * time.Hour,
		LogLevel:          slog.LevelInfo,
	}

	if portStr := getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
		}
		cfg.Port = port
	}

	if path := getenv("DATABASE_PATH"); path != "" {
		cfg.DatabasePath = path
	}

	if key := getenv("ADMIN_KEY"); key != "" {
		cfg.AdminKey = key
	}

	if lifetime := getenv("SESSION_LIFETIME"); lifetime != "" {
		d, err := time.ParseDuration(lifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_LIFETIME environment variable: %w", err)
		}
		cfg.SessionLifetime = d
	}

	if level := getenv("LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) UsingDefaultAdminKey() bool {
	return c.AdminKey == DefaultAdminKey
}
