// Package config loads server settings from the environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Server      struct {
		Port            int      `env:"PORT" envDefault:"8080"`
		ReadTimeout     int      `env:"READ_TIMEOUT" envDefault:"15"`
		WriteTimeout    int      `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int      `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int      `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
		AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	} `envPrefix:"SERVER_"`
	Database struct {
		Path string `env:"PATH" envDefault:"shifts.db"`
	} `envPrefix:"DATABASE_"`
	Schedule struct {
		// BusinessTimezone is the fixed zone for every day-boundary comparison.
		BusinessTimezone string `env:"BUSINESS_TIMEZONE" envDefault:"America/New_York"`
		// PeerOverlapTolerance is the peer time-off overlap permitted, in percent.
		PeerOverlapTolerance float64 `env:"PEER_OVERLAP_TOLERANCE" envDefault:"10"`
	} `envPrefix:"SCHEDULE_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// Only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	if cfg.Schedule.PeerOverlapTolerance < 0 {
		return nil, errors.New("SCHEDULE_PEER_OVERLAP_TOLERANCE must not be negative")
	}

	return cfg, nil
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func (c *Config) ReadTimeout() time.Duration     { return seconds(c.Server.ReadTimeout) }
func (c *Config) WriteTimeout() time.Duration    { return seconds(c.Server.WriteTimeout) }
func (c *Config) IdleTimeout() time.Duration     { return seconds(c.Server.IdleTimeout) }
func (c *Config) ShutdownTimeout() time.Duration { return seconds(c.Server.ShutdownTimeout) }
