// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront application
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Storage StorageConfig
	Pricing PricingConfig
	Admin   AdminConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// StorageConfig selects and configures the persisted key-value store.
// Backend "pebble" keeps everything on local disk; "redis" targets an
// external Redis; "memory" keeps nothing across restarts.
type StorageConfig struct {
	Backend       string
	PebblePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// PricingConfig contains the fixed pricing rules of the storefront
type PricingConfig struct {
	TaxRate         string // decimal fraction, e.g. "0.10"
	DefaultShipping string // cost of the default shipping tier
}

// AdminConfig contains the local admin panel configuration
type AdminConfig struct {
	DefaultUsername string
	DefaultPassword string
	BcryptCost      int
	SessionSecret   string
	SessionExpiry   time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins: strings.Split(getEnv("SERVER_ALLOWED_ORIGINS", "*"), ","),
		},
		Storage: StorageConfig{
			Backend:       getEnv("STORAGE_BACKEND", "pebble"),
			PebblePath:    getEnv("STORAGE_PEBBLE_PATH", "./data/storefront"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			KeyPrefix:     getEnv("STORAGE_KEY_PREFIX", "storefront"),
		},
		Pricing: PricingConfig{
			TaxRate:         getEnv("PRICING_TAX_RATE", "0.10"),
			DefaultShipping: getEnv("PRICING_DEFAULT_SHIPPING", "5.00"),
		},
		Admin: AdminConfig{
			DefaultUsername: getEnv("ADMIN_DEFAULT_USERNAME", "admin"),
			DefaultPassword: getEnv("ADMIN_DEFAULT_PASSWORD", "admin123"),
			BcryptCost:      getEnvAsInt("ADMIN_BCRYPT_COST", 12),
			SessionSecret:   getEnv("ADMIN_SESSION_SECRET", "local-storefront-demo-session-secret-key"),
			SessionExpiry:   getEnvAsDuration("ADMIN_SESSION_EXPIRE", 12*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "pebble":
		if c.Storage.PebblePath == "" {
			return fmt.Errorf("STORAGE_PEBBLE_PATH is required for the pebble backend")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case "memory":
		// Nothing to check; state is lost on restart.
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want pebble, redis or memory)", c.Storage.Backend)
	}

	rate, err := strconv.ParseFloat(c.Pricing.TaxRate, 64)
	if err != nil || rate < 0 || rate >= 1 {
		return fmt.Errorf("PRICING_TAX_RATE must be a fraction in [0,1), got %q", c.Pricing.TaxRate)
	}

	if c.Admin.DefaultUsername == "" || c.Admin.DefaultPassword == "" {
		return fmt.Errorf("ADMIN_DEFAULT_USERNAME and ADMIN_DEFAULT_PASSWORD are required")
	}
	if len(c.Admin.SessionSecret) < 16 {
		return fmt.Errorf("ADMIN_SESSION_SECRET must be at least 16 characters long")
	}

	return nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
