// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server.
type Config struct {
	Port         string        `env:"PORT"          envDefault:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"brandcraft.db"`
	JWTSecret    string        `env:"JWT_SECRET"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"true"`
	BcryptCost   int           `env:"BCRYPT_COST"   envDefault:"12"`
	SessionTTL   time.Duration `env:"SESSION_TTL"   envDefault:"168h"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	GenerationRatePerMinute int `env:"GENERATION_RATE_PER_MINUTE" envDefault:"20"`
	GenerationBurst         int `env:"GENERATION_BURST"           envDefault:"5"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then parses the environment into a
// Config and validates it. Variables already set in the environment take
// precedence over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	} else if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.GenerationRatePerMinute <= 0 || c.GenerationBurst <= 0 {
		errs = append(errs, errors.New("GENERATION_RATE_PER_MINUTE and GENERATION_BURST must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

// GeneratorEnabled reports whether a Gemini API key is configured.
func (c Config) GeneratorEnabled() bool {
	return c.GeminiAPIKey != ""
}

// UseRedisSessions reports whether sessions live in Redis instead of SQLite.
func (c Config) UseRedisSessions() bool {
	return c.RedisAddr != ""
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", s, err)
	}
	return lvl, nil
}
