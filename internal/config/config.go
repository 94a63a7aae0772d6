package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	LogLevel    string `validate:"oneof=debug info warn error"`
	Storage     StorageConfig
	Database    DatabaseConfig
}

// StorageConfig selects where the vocabulary is persisted
type StorageConfig struct {
	Backend         string `validate:"oneof=csv postgres"`
	Path            string `validate:"required_if=Backend csv"`
	CreateIfMissing bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string `validate:"numeric"`
	Name     string
	User     string
	Password string
}

var validate = validator.New()

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	createIfMissing, err := strconv.ParseBool(getEnv("VOCAB_CREATE_IF_MISSING", "false"))
	if err != nil {
		return nil, fmt.Errorf("VOCAB_CREATE_IF_MISSING must be a boolean: %w", err)
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Storage: StorageConfig{
			Backend:         getEnv("VOCAB_BACKEND", BackendCSV),
			Path:            getEnv("VOCAB_PATH", "vocabulary.csv"),
			CreateIfMissing: createIfMissing,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "flashcards"),
			User:     getEnv("DB_USER", "flashcards"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Storage.Backend == BackendPostgres && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required for the postgres backend")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
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
