package config

import (
	"os"
	"strconv"

	"studiopulse/internal/errors"
)

// Source names the configured client-record provider.
type Source string

const (
	SourcePostgres Source = "postgres"
	SourceExcel    Source = "excel"
	SourceDemo     Source = "demo"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds client-record source settings
type DataConfig struct {
	Source     Source
	RosterFile string
	DemoSeed   int64
	DemoCount  int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			Source:     Source(getEnvOrDefault("CLIENT_SOURCE", string(SourceDemo))),
			RosterFile: os.Getenv("ROSTER_FILE"),
			DemoSeed:   getEnvInt64OrDefault("DEMO_SEED", 42),
			DemoCount:  getEnvIntOrDefault("DEMO_CLIENTS", 200),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when CLIENT_SOURCE=postgres")
		}
	case SourceExcel:
		if config.Data.RosterFile == "" {
			return errors.ConfigInvalid("ROSTER_FILE is required when CLIENT_SOURCE=excel")
		}
	case SourceDemo:
		if config.Data.DemoCount <= 0 {
			return errors.ConfigInvalid("DEMO_CLIENTS must be positive")
		}
	default:
		return errors.ConfigInvalid("CLIENT_SOURCE must be postgres, excel, or demo")
	}

	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
