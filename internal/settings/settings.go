// Package settings reads host configuration from the environment.
package settings

import (
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "INTERCHANGE_"

// Settings configures the console host. Command-line flags override it.
type Settings struct {
	Definitions string     `env:"DEFINITIONS"`
	Debug       bool       `env:"DEBUG"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"interchange:cooldown:"`

	MetricsAddr     string        `env:"METRICS_ADDR"`
	CooldownCleanup time.Duration `env:"COOLDOWN_CLEANUP" envDefault:"1m"`
}

// Load reads dotenv files (default ".env"), then parses the environment.
// Missing dotenv files are ignored; variables already set take precedence.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, err
	}
	return env.ParseAsWithOptions[Settings](env.Options{Prefix: Prefix})
}
