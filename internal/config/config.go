package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Store       StoreConfig
	Telemetry   TelemetryConfig
	RateLimit   RateLimitConfig
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// StoreConfig holds user store configuration
type StoreConfig struct {
	Backend string
	Table   TableConfig
	SQLite  SQLiteConfig
}

// TableConfig identifies the remote users table
type TableConfig struct {
	Name     string
	Region   string
	Endpoint string // optional, for DynamoDB Local / LocalStack
}

// SQLiteConfig holds the local SQLite backend configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
}

// TelemetryConfig holds tracing and metrics naming
type TelemetryConfig struct {
	ServiceName      string
	MetricsNamespace string
}

// RateLimitConfig holds the HTTP server rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORE_BACKEND", BackendDynamoDB)
	v.SetDefault("USERS_TABLE_NAME", "bc-api-demo-user")
	v.SetDefault("USERS_TABLE_REGION", "ap-southeast-2")
	v.SetDefault("SQLITE_PATH", "./data/users.db")
	v.SetDefault("SQLITE_MAX_OPEN_CONNS", 1)
	v.SetDefault("SERVICE_NAME", "users-api")
	v.SetDefault("METRICS_NAMESPACE", "Powertools")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
			Table: TableConfig{
				Name:     v.GetString("USERS_TABLE_NAME"),
				Region:   v.GetString("USERS_TABLE_REGION"),
				Endpoint: v.GetString("DYNAMODB_ENDPOINT"),
			},
			SQLite: SQLiteConfig{
				Path:         v.GetString("SQLITE_PATH"),
				MaxOpenConns: v.GetInt("SQLITE_MAX_OPEN_CONNS"),
			},
		},
		Telemetry: TelemetryConfig{
			ServiceName:      v.GetString("SERVICE_NAME"),
			MetricsNamespace: v.GetString("METRICS_NAMESPACE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration can build a working store
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendDynamoDB:
		if c.Store.Table.Name == "" {
			return fmt.Errorf("USERS_TABLE_NAME is required for the %s backend", BackendDynamoDB)
		}
		if c.Store.Table.Region == "" {
			return fmt.Errorf("USERS_TABLE_REGION is required for the %s backend", BackendDynamoDB)
		}
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s backend", BackendSQLite)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
