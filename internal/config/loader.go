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

// Environment variable names.
const (
	EnvPrefix = "SDC_"
	EnvConfig = "SDC_CONFIG"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file at path, or at $SDC_CONFIG when path is empty
//  3. env (prefix SDC_)
//
// List and map settings (members, name_markers, adjustments) given in the
// file replace the defaults instead of being merged into them.
func Load(_ context.Context, path string) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SDC_LEAGUE_MODE -> league_mode. Keys stay flat so underscores survive.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfig {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := replaceCollections(k, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// replaceCollections re-decodes collection keys into fresh values; decoding
// onto the defaults would merge element by element.
func replaceCollections(k *koanf.Koanf, cfg *Config) error {
	if k.Exists("members") {
		cfg.Members = nil
		if err := k.Unmarshal("members", &cfg.Members); err != nil {
			return fmt.Errorf("%w: members: %w", ErrLoadConfig, err)
		}
	}
	if k.Exists("name_markers") {
		cfg.NameMarkers = k.Strings("name_markers")
	}
	if k.Exists("adjustments") {
		cfg.Adjustments = nil
		if err := k.Unmarshal("adjustments", &cfg.Adjustments); err != nil {
			return fmt.Errorf("%w: adjustments: %w", ErrLoadConfig, err)
		}
	}
	return nil
}
