// Package config resolves runtime settings from the environment. A
// .env file in the working directory is folded in first, so local runs
// and deployments read the same variable names.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abw750/ferry-clock/internal/models"
)

// Defaults target the Seattle / Bainbridge Island run.
const (
	DefaultRouteID         = 5
	DefaultRouteName       = "Seattle / Bainbridge Island"
	DefaultWestTerminalID  = 3
	DefaultEastTerminalID  = 7
	DefaultWestTerminal    = "Bainbridge Island"
	DefaultEastTerminal    = "Seattle"
	DefaultCrossingMinutes = 35

	DefaultListenAddr = ":8080"
	DefaultDBPath     = "ferry-clock.db"
	DefaultTimezone   = "America/Los_Angeles"

	defaultPollInterval = time.Minute
	minPollInterval     = 15 * time.Second
)

// Config is everything the binaries need to run.
type Config struct {
	APIKey string

	Route models.RouteSelection

	PollInterval time.Duration
	ListenAddr   string
	DBPath       string

	Timezone string
	Location *time.Location
}

// Load reads .env (when present) and the environment, then validates.
// The API key is the only setting with no default.
func Load() (*Config, error) {
	// Missing .env is the normal deployed case.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey: os.Getenv("WSDOT_API_KEY"),
		Route: models.RouteSelection{
			Description:      envStr("ROUTE_NAME", DefaultRouteName),
			RouteID:          envInt("ROUTE_ID", DefaultRouteID),
			CrossingMinutes:  envInt("CROSSING_TIME_MINUTES", DefaultCrossingMinutes),
			TerminalIDWest:   envInt("WEST_TERMINAL_ID", DefaultWestTerminalID),
			TerminalIDEast:   envInt("EAST_TERMINAL_ID", DefaultEastTerminalID),
			TerminalNameWest: envStr("WEST_TERMINAL_NAME", DefaultWestTerminal),
			TerminalNameEast: envStr("EAST_TERMINAL_NAME", DefaultEastTerminal),
			LabelWest:        envStr("WEST_LABEL", "BI"),
			LabelEast:        envStr("EAST_LABEL", "SEA"),
		},
		PollInterval: pollInterval(os.Getenv("POLL_MS")),
		ListenAddr:   envStr("LISTEN_ADDR", DefaultListenAddr),
		DBPath:       envStr("DB_PATH", DefaultDBPath),
		Timezone:     envStr("TZ_NAME", DefaultTimezone),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("WSDOT_API_KEY is required")
	}
	if cfg.Route.TerminalIDWest == 0 || cfg.Route.TerminalIDEast == 0 {
		return nil, fmt.Errorf("both terminal ids are required")
	}
	if cfg.Route.TerminalIDWest == cfg.Route.TerminalIDEast {
		return nil, fmt.Errorf("terminal ids must differ")
	}
	if cfg.Route.CrossingMinutes <= 0 {
		cfg.Route.CrossingMinutes = DefaultCrossingMinutes
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// pollInterval parses the legacy millisecond setting with a floor so a
// typo cannot hammer the upstream API.
func pollInterval(raw string) time.Duration {
	if raw == "" {
		return defaultPollInterval
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return defaultPollInterval
	}
	d := time.Duration(ms) * time.Millisecond
	if d < minPollInterval {
		return minPollInterval
	}
	return d
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
