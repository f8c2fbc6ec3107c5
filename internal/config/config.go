// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Latency sources understood by the sampler.
const (
	LatencySourceCounter   = "counter"
	LatencySourceHeartbeat = "heartbeat"
)

type Config struct {
	DiscordToken    string        `env:"DISCORD_TOKEN"`
	DiscordDevToken string        `env:"DISCORD_DEV_TOKEN"`
	DevMode         bool          `env:"DEV_MODE" envDefault:"false"`
	Prefix          string        `env:"BOT_PREFIX" envDefault:"?"`
	ServersDBPath   string        `env:"SERVERS_DB_PATH" envDefault:"databases/servers.db"`
	UsersDBPath     string        `env:"USERS_DB_PATH" envDefault:"databases/users.db"`
	StatusAddr      string        `env:"STATUS_ADDR" envDefault:"127.0.0.1:8080"`
	CommandCache    string        `env:"COMMAND_CACHE_PATH" envDefault:"data/commands.json"`
	LatencyInterval time.Duration `env:"LATENCY_INTERVAL" envDefault:"30s"`
	LatencySource   string        `env:"LATENCY_SOURCE" envDefault:"counter"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile         string        `env:"LOG_FILE"`
}

// LoadEnvFile reads a .env file into the process environment. A missing file
// is not an error; system environment variables are used instead.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Parse builds a Config from the environment without checking credentials.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load parses the environment and requires a usable bot token.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if cfg.Token() == "" {
		if cfg.DevMode {
			return nil, errors.New("DISCORD_DEV_TOKEN is not set")
		}
		return nil, errors.New("DISCORD_TOKEN is not set")
	}
	return cfg, nil
}

// Token returns the dev token in dev mode, the production token otherwise.
func (c *Config) Token() string {
	if c.DevMode {
		return c.DiscordDevToken
	}
	return c.DiscordToken
}

func (c *Config) validate() error {
	if c.Prefix == "" {
		return errors.New("BOT_PREFIX must not be empty")
	}
	if c.LatencyInterval <= 0 {
		return fmt.Errorf("LATENCY_INTERVAL must be positive, got %s", c.LatencyInterval)
	}
	switch c.LatencySource {
	case LatencySourceCounter, LatencySourceHeartbeat:
	default:
		return fmt.Errorf("unknown LATENCY_SOURCE %q", c.LatencySource)
	}
	return nil
}
