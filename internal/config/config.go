// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SCOUT_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// Debug forces debug logging and logs stack traces of recovered panics.
	Debug bool `koanf:"debug"`

	// LeaderboardCapacity caps the number of stored leaderboard entries.
	LeaderboardCapacity int `koanf:"leaderboard_capacity" validate:"gt=0"`

	// LeaderboardLimit caps the entries returned by GET /leaderboard.
	LeaderboardLimit int `koanf:"leaderboard_limit" validate:"gt=0,ltefield=LeaderboardCapacity"`

	// MetricsIntervalMS sets how often system and store gauges are refreshed.
	MetricsIntervalMS int `koanf:"metrics_interval_ms" validate:"gte=100"`

	// MetricsNamespace and MetricsSubsystem prefix every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required,metric_name"`
	MetricsSubsystem string `koanf:"metrics_subsystem" validate:"required,metric_name"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":5000",
		Debug:               false,
		LeaderboardCapacity: 100,
		LeaderboardLimit:    50,
		MetricsIntervalMS:   10_000,
		MetricsNamespace:    "scoutboard",
		MetricsSubsystem:    "api",
	}
}
