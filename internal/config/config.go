package config

import (
	"fmt"
	"time"

	"checkout-be/internal/logger"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	DBHost     string `env:"DB_HOST,required"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	JWTSecret          string   `env:"JWT_SECRET"`
	InternalSecretKey  string   `env:"INTERNAL_SECRET_KEY"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// Locale used when a request names none and sends no Accept-Language.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en-US"`

	// Mounted billing sections are dropped after SectionTTL without use.
	SectionTTL      time.Duration `env:"SECTION_TTL" envDefault:"30m"`
	SectionCapacity int           `env:"SECTION_CAPACITY" envDefault:"10000"`
}

// Load reads the environment, after merging a .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		logger.L().Fatal("environment variables not loaded properly", zap.Error(err))
	}
	return cfg
}

func (c *Config) validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.SectionCapacity < 1 {
		return fmt.Errorf("SECTION_CAPACITY must be positive, got %d", c.SectionCapacity)
	}
	if c.SectionTTL <= 0 {
		return fmt.Errorf("SECTION_TTL must be positive, got %s", c.SectionTTL)
	}
	return nil
}
