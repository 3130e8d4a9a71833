package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV" envDefault:"development"`
		Port        string `env:"PORT"    envDefault:"8088"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"gridiron"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	// JWT verifies access tokens minted by the hosted auth provider.
	JWT struct {
		Secret   string `env:"JWT_SECRET"`
		Issuer   string `env:"JWT_ISSUER"`
		Audience string `env:"JWT_AUDIENCE" envDefault:"authenticated"`
	}
	Editor struct {
		SessionTTLMinutes int    `env:"EDITOR_SESSION_TTL_MINUTES" envDefault:"120"`
		MaxSessions       int    `env:"EDITOR_MAX_SESSIONS"        envDefault:"10000"`
		CatalogPath       string `env:"FORMATION_CATALOG_PATH"`
	}
}

// SessionTTL is the idle lifetime of an editor session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Editor.SessionTTLMinutes) * time.Minute
}

// LoadConfig reads the environment, after loading a .env file if present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "gridiron")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "")
	cfg.JWT.Audience = getEnv("JWT_AUDIENCE", "authenticated")

	var err error
	cfg.Editor.SessionTTLMinutes, err = getEnvAsInt("EDITOR_SESSION_TTL_MINUTES", 120)
	if err != nil {
		return nil, fmt.Errorf("invalid EDITOR_SESSION_TTL_MINUTES: %w", err)
	}
	cfg.Editor.MaxSessions, err = getEnvAsInt("EDITOR_MAX_SESSIONS", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid EDITOR_MAX_SESSIONS: %w", err)
	}
	cfg.Editor.CatalogPath = getEnv("FORMATION_CATALOG_PATH", "")

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Editor.SessionTTLMinutes <= 0 || cfg.Editor.MaxSessions <= 0 {
		return nil, fmt.Errorf("editor session TTL and max sessions must be positive")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DB.Host,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
	)
}

// ConnectDB opens the database. The handle is handed to repositories by
// the caller; nothing here keeps it.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Successfully connected to database!")
	return db, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
