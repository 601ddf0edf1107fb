package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr    string
	BotToken    string // optional, Telegram frontend disabled when empty
	IntentsPath string

	SessionTimeout      time.Duration
	ConfidenceThreshold float64
	MaxAuthAttempts     int
	CallTimeout         time.Duration

	Database DatabaseConfig
}

// DatabaseConfig holds banking database connection settings.
// The stub gateway is used when Host is empty.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled reports whether a banking database is configured
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	timeoutMinutes, err := getEnvInt("SESSION_TIMEOUT_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	threshold, err := getEnvFloat("CONFIDENCE_THRESHOLD", 0.4)
	if err != nil {
		return nil, err
	}
	maxAttempts, err := getEnvInt("MAX_AUTH_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	callSeconds, err := getEnvInt("PORT_CALL_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		BotToken:            os.Getenv("BOT_TOKEN"),
		IntentsPath:         getEnv("INTENTS_PATH", "data/intents.json"),
		SessionTimeout:      time.Duration(timeoutMinutes) * time.Minute,
		ConfidenceThreshold: threshold,
		MaxAuthAttempts:     maxAttempts,
		CallTimeout:         time.Duration(callSeconds) * time.Second,
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "finbot"),
			User:     getEnv("DB_USER", "finbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	if cfg.SessionTimeout <= 0 {
		return nil, fmt.Errorf("SESSION_TIMEOUT_MINUTES must be positive")
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("CONFIDENCE_THRESHOLD must be in [0,1]")
	}
	if cfg.MaxAuthAttempts < 1 {
		return nil, fmt.Errorf("MAX_AUTH_ATTEMPTS must be at least 1")
	}
	if cfg.Database.Enabled() && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
