package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if TEAMFORGE_CONFIG is set
//  3. env (prefix TEAMFORGE_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("TEAMFORGE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Env keys map flat: TEAMFORGE_QUEUE_SIZE -> queue_size. Underscores are
	// preserved to match the koanf tags on the struct.
	envProvider := env.Provider("TEAMFORGE_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "teamforge_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TopSuggestions <= 0:
		return fmt.Errorf("%w: top_suggestions must be positive", ErrInvalidConfig)
	case c.SlotMinScore < 0:
		return fmt.Errorf("%w: slot_min_score must not be negative", ErrInvalidConfig)
	case c.BuildLatencyMinMS < 0 || c.BuildLatencyMaxMS < c.BuildLatencyMinMS:
		return fmt.Errorf("%w: build latency bounds are inverted", ErrInvalidConfig)
	case c.ConfidenceHigh < c.ConfidenceMedium:
		return fmt.Errorf("%w: confidence_high must not be below confidence_medium", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	return nil
}
