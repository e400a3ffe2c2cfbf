// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and env vars on top.
// - External errors are wrapped via this package's sentinel errors.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory build job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of build workers.
	WorkerCount int `koanf:"worker_count"`

	// TopSuggestions caps how many ranked candidates each requirement keeps.
	TopSuggestions int `koanf:"top_suggestions"`

	// SlotMinScore filters slot-mode candidates scoring at or below it.
	SlotMinScore int `koanf:"slot_min_score"`

	// SlotEffortDays is the placeholder engagement length for slot costing.
	SlotEffortDays int `koanf:"slot_effort_days"`

	// BuildLatencyMinMS and BuildLatencyMaxMS bound the simulated analysis
	// delay applied to build and upload jobs.
	BuildLatencyMinMS int `koanf:"build_latency_min_ms"`
	BuildLatencyMaxMS int `koanf:"build_latency_max_ms"`

	// ConfidenceHigh and ConfidenceMedium are the average-score cut-offs for
	// the summary confidence bands.
	ConfidenceHigh   int `koanf:"confidence_high"`
	ConfidenceMedium int `koanf:"confidence_medium"`

	// AuthSecret signs session tokens. The default is for local use only.
	AuthSecret string `koanf:"auth_secret"`

	// SessionTTLMinutes bounds session token lifetime.
	SessionTTLMinutes int `koanf:"session_ttl_minutes"`

	// PoolSize and Seed drive the demo fixture generator.
	PoolSize int   `koanf:"pool_size"`
	Seed     int64 `koanf:"seed"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		QueueSize:         1024,
		WorkerCount:       runtime.NumCPU(),
		TopSuggestions:    5,
		SlotMinScore:      20,
		SlotEffortDays:    30,
		BuildLatencyMinMS: 400,
		BuildLatencyMaxMS: 900,
		ConfidenceHigh:    70,
		ConfidenceMedium:  50,
		AuthSecret:        "local-dev-secret",
		SessionTTLMinutes: 12 * 60,
		PoolSize:          55,
		Seed:              20260901,
	}
}
