// Package config loads the server's settings from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment configuration for the server.
type Config struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	SeedDemo        bool          `env:"SEED_DEMO"        envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"     envDefault:"*"      envSeparator:","`

	// RedisAddr enables the reservation activity stream when set.
	RedisAddr             string        `env:"REDIS_ADDR"`
	StreamKey             string        `env:"STREAM_KEY"              envDefault:"ledger:reservations"`
	PublisherPollInterval time.Duration `env:"PUBLISHER_POLL_INTERVAL" envDefault:"5s"`
	PublisherBatchSize    int           `env:"PUBLISHER_BATCH_SIZE"    envDefault:"10"`
}

// StreamEnabled reports whether outbox records should be relayed to Redis.
func (c *Config) StreamEnabled() bool {
	return c.RedisAddr != ""
}

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
