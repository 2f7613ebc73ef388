package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "IGNITE_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if IGNITE_CONFIG is set
//  3. env (prefix IGNITE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like IGNITE_FOREST_TREES -> forest_trees (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the pipeline cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TestFraction <= 0 || c.TestFraction >= 1:
		return fmt.Errorf("%w: test_fraction must be in (0,1), got %v", ErrInvalidConfig, c.TestFraction)
	case c.ForestTrees < 1:
		return fmt.Errorf("%w: forest_trees must be positive", ErrInvalidConfig)
	case c.BoostingEstimators < 1:
		return fmt.Errorf("%w: boosting_estimators must be positive", ErrInvalidConfig)
	case c.LabelNoiseStd < 0:
		return fmt.Errorf("%w: label_noise_std must not be negative", ErrInvalidConfig)
	}
	switch c.UnknownCategoryPolicy {
	case UnknownPolicyReserve, UnknownPolicyFail:
	default:
		return fmt.Errorf("%w: unknown_category_policy must be %q or %q, got %q",
			ErrInvalidConfig, UnknownPolicyReserve, UnknownPolicyFail, c.UnknownCategoryPolicy)
	}
	return nil
}
