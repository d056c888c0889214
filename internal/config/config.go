package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the signing secret for the admin API routes.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds attendance engine tuning.
type EngineConfig struct {
	// Timezone is the IANA zone punches and calendar dates are interpreted in.
	Timezone string
	// MaxWorkers caps batch fan-out across employees.
	MaxWorkers int
	// FinalizeHour is the local hour the nightly previous-day finalize fires.
	FinalizeHour int
}

func Load() (*Config, error) {
	// A missing .env file is fine in container deployments where the
	// environment is injected directly.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	maxWorkers, err := strconv.Atoi(getEnv("ENGINE_MAX_WORKERS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_MAX_WORKERS: %w", err)
	}

	finalizeHour, err := strconv.Atoi(getEnv("ENGINE_FINALIZE_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_FINALIZE_HOUR: %w", err)
	}

	config.Engine = EngineConfig{
		Timezone:     getEnv("ENGINE_TIMEZONE", "Asia/Colombo"),
		MaxWorkers:   maxWorkers,
		FinalizeHour: finalizeHour,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Engine.MaxWorkers < 1 {
		return fmt.Errorf("ENGINE_MAX_WORKERS must be at least 1")
	}
	if c.Engine.FinalizeHour < 0 || c.Engine.FinalizeHour > 23 {
		return fmt.Errorf("ENGINE_FINALIZE_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
