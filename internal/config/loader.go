package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "EMODETECT_"
	envFileKey = "EMODETECT_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if EMODETECT_CONFIG is set
//  3. env (prefix EMODETECT_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envFileKey); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// EMODETECT_CLASSIFIER_URL -> classifier_url; underscores are kept to
	// match the flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
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

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ModelID) == "":
		return fmt.Errorf("%w: model_id must not be empty", ErrInvalidConfig)
	case c.ClassifierTimeoutMS <= 0:
		return fmt.Errorf("%w: classifier_timeout_ms must be positive", ErrInvalidConfig)
	}

	u, err := url.Parse(c.ClassifierURL)
	if err != nil || c.ClassifierURL == "" {
		return fmt.Errorf("%w: classifier_url %q is not a valid URL", ErrInvalidConfig, c.ClassifierURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: classifier_url must use http or https", ErrInvalidConfig)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: classifier_url has no host", ErrInvalidConfig)
	}
	return nil
}
