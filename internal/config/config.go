// Package config defines service configuration structures and loading hooks.
//
// Values are layered by Load: defaults from New, an optional YAML file named
// by GOALKEEP_CONFIG, then GOALKEEP_-prefixed environment variables.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Oracle modes.
const (
	OracleSimulated = "simulated"
	OracleHTTP      = "http"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite database. Empty serves the built-in demo
	// roster from memory.
	DBPath string `koanf:"db_path"`

	// OracleMode selects the save-probability oracle: simulated or http.
	OracleMode string `koanf:"oracle_mode"`
	// OracleURL is the base URL of the remote model server (http mode).
	OracleURL string `koanf:"oracle_url"`
	// OracleTimeoutMS bounds a single zone query.
	OracleTimeoutMS int `koanf:"oracle_timeout_ms"`
	// OracleRatePerSec caps remote queries per second; 0 disables limiting.
	OracleRatePerSec float64 `koanf:"oracle_rate_per_sec"`
	// OracleBreakerFailures is the consecutive-failure count that opens the breaker.
	OracleBreakerFailures int `koanf:"oracle_breaker_failures"`

	// OracleLatencyMinMS and OracleLatencyMaxMS simulate model latency bounds.
	OracleLatencyMinMS int `koanf:"oracle_latency_min_ms"`
	OracleLatencyMaxMS int `koanf:"oracle_latency_max_ms"`

	// ZoneConcurrency bounds in-flight oracle queries per grid.
	ZoneConcurrency int `koanf:"zone_concurrency"`
	// RosterConcurrency bounds keepers evaluated at once.
	RosterConcurrency int `koanf:"roster_concurrency"`

	// PenaltyDistanceM is the shot distance used for penalty rankings.
	PenaltyDistanceM float64 `koanf:"penalty_distance_m"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		OracleMode:            OracleSimulated,
		OracleTimeoutMS:       2000,
		OracleRatePerSec:      50,
		OracleBreakerFailures: 5,
		OracleLatencyMinMS:    0,
		OracleLatencyMaxMS:    0,
		ZoneConcurrency:       9,
		RosterConcurrency:     4,
		PenaltyDistanceM:      7.0,
	}
}

// OracleTimeout returns the per-query timeout as a duration.
func (c *Config) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)):
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	case c.OracleMode != OracleSimulated && c.OracleMode != OracleHTTP:
		return fmt.Errorf("%w: oracle_mode must be %s or %s", ErrInvalidConfig, OracleSimulated, OracleHTTP)
	case c.OracleTimeoutMS <= 0:
		return fmt.Errorf("%w: oracle_timeout_ms must be positive", ErrInvalidConfig)
	case c.OracleRatePerSec < 0:
		return fmt.Errorf("%w: oracle_rate_per_sec must not be negative", ErrInvalidConfig)
	case c.OracleBreakerFailures <= 0:
		return fmt.Errorf("%w: oracle_breaker_failures must be positive", ErrInvalidConfig)
	case c.OracleLatencyMinMS < 0 || c.OracleLatencyMaxMS < c.OracleLatencyMinMS:
		return fmt.Errorf("%w: oracle latency range [%d,%d] is invalid",
			ErrInvalidConfig, c.OracleLatencyMinMS, c.OracleLatencyMaxMS)
	case c.ZoneConcurrency <= 0 || c.RosterConcurrency <= 0:
		return fmt.Errorf("%w: concurrency limits must be positive", ErrInvalidConfig)
	case c.PenaltyDistanceM < 6 || c.PenaltyDistanceM > 12:
		return fmt.Errorf("%w: penalty_distance_m must be within [6,12]", ErrInvalidConfig)
	}
	if c.OracleMode == OracleHTTP {
		u, err := url.Parse(c.OracleURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: oracle_url must be an absolute URL in http mode", ErrInvalidConfig)
		}
	}
	return nil
}
