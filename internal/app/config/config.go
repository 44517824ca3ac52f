package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the booking client configuration.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP      HTTP       `mapstructure:",squash"`
	FlightAPI FlightAPI  `mapstructure:",squash"`
	Redis     Redis      `mapstructure:",squash"`
	Session   Session    `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// FlightAPI configures the remote flight API transport. URL points to the
// GraphQL endpoint and defaults to the local development server when unset.
type FlightAPI struct {
	URL                   string        `mapstructure:"FLIGHT_API_URL"`
	Timeout               time.Duration `mapstructure:"FLIGHT_API_TIMEOUT"`
	MaxRetries            int           `mapstructure:"FLIGHT_API_MAX_RETRIES"`
	RateLimitRPS          int           `mapstructure:"FLIGHT_API_RATE_LIMIT"`
	SearchCacheExpiration time.Duration `mapstructure:"SEARCH_CACHE_EXPIRATION"`
}

type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// Session controls how long an idle booking workflow is kept in memory
// before it is evicted.
type Session struct {
	IdleTTL time.Duration `mapstructure:"SESSION_IDLE_TTL"`
}
