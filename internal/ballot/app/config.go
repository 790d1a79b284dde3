package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/notify"
	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
	"github.com/aussiebroadwan/ballot/pkg/jwtx"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Issuer string // issuer claim for session tokens (default: ballot)

	StoreDriver  string // memory or sqlite (default: sqlite)
	DatabaseFile string // SQLite file for the sqlite driver (default: ballot.db)
	SeedFile     string // YAML fixture applied to an empty store; empty uses the built in one
	SkipSeed     bool

	VotingWindow          time.Duration // deadline offset for new proposals (default: 7 days)
	DeadlineSoonWindow    time.Duration // how close a deadline must be to notify (default: 24h)
	DeadlineWatchInterval time.Duration // how often deadlines are swept (default: 5m)
	SessionTTL            time.Duration // session token lifetime (default: 12h)

	RedisURL    string // optional: publish notifications to a Redis stream
	RedisStream string // stream key (default: ballot.notifications)

	Env                 string // dev, staging, prod (default: dev)
	LogLevel            string // debug, info, warn, error (default: info)
	LogFormat           string // json or text (default: json)
	Port                int    // HTTP port (default: 8080)
	ShutdownGracePeriod time.Duration
	RateLimits          httpx.RateLimits
}

func LoadConfig() Config {
	return Config{
		Issuer:                getEnvOrDefault("AUTH_ISSUER", "ballot"),
		StoreDriver:           getEnvOrDefault("STORE_DRIVER", DriverSQLite),
		DatabaseFile:          getEnvOrDefault("DATABASE_FILE", "ballot.db"),
		SeedFile:              os.Getenv("SEED_FILE"),
		SkipSeed:              getEnvBoolOrDefault("SKIP_SEED", false),
		VotingWindow:          getEnvDurationOrDefault("PROPOSAL_VOTING_WINDOW", service.DefaultVotingWindow),
		DeadlineSoonWindow:    getEnvDurationOrDefault("DEADLINE_SOON_WINDOW", service.DefaultDeadlineSoonWindow),
		DeadlineWatchInterval: getEnvDurationOrDefault("DEADLINE_WATCH_INTERVAL", service.DefaultDeadlineWatchInterval),
		SessionTTL:            getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),
		RedisURL:              os.Getenv("REDIS_URL"),
		RedisStream:           getEnvOrDefault("REDIS_STREAM", notify.DefaultStream),
		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RateLimits:            httpx.RateLimitsFromEnv(),
	}
}

// Validate reports settings New cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMemory, DriverSQLite, c.StoreDriver))
	}
	if c.StoreDriver == DriverSQLite && c.DatabaseFile == "" {
		errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("90s", "168h") or a bare
// integer number of minutes.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}
