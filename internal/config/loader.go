package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ASR_CONFIG is set
//  3. env (prefix ASR_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ASR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ASR_ADDR, ASR_LIVE_FEED_URL, ...
	// Map env keys like ASR_SEASON_TAG -> season_tag (flat keys).
	envProvider := env.Provider("ASR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "asr_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
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
	case len(c.FireBandsMen) != 3 || len(c.FireBandsWomen) != 3:
		return fmt.Errorf("%w: fire bands must have exactly three edges", ErrInvalidConfig)
	case c.QualifyingRunsMen < 1 || c.QualifyingRunsWomen < 1:
		return fmt.Errorf("%w: qualifying run thresholds must be positive", ErrInvalidConfig)
	}
	if _, err := time.Parse("2006-01-02", c.SeasonCutoff); err != nil {
		return fmt.Errorf("%w: season_cutoff must be YYYY-MM-DD: %w", ErrInvalidConfig, err)
	}
	return nil
}

// CutoffDate returns the parsed season cutoff. Callers must have validated
// the config first; an unparseable cutoff yields the zero time.
func (c *Config) CutoffDate() time.Time {
	t, _ := time.Parse("2006-01-02", c.SeasonCutoff)
	return t
}
