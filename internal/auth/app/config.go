package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, populated from environment
// variables. The JWT secret has no default; the process refuses to start
// without one.
type Config struct {
	Issuer    string `env:"AUTH_ISSUER" envDefault:"authd"`
	JWTSecret string `env:"AUTH_JWT_SECRET,required"`

	DatabaseFile string        `env:"AUTH_DATABASE_FILE" envDefault:"authd.db"`
	SessionTTL   time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`
	TokenTTL     time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	SecureCookie bool          `env:"AUTH_SECURE_COOKIE" envDefault:"false"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
