package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/diarisk/internal/domain/estimate"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DIARISK_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DIARISK_CONFIG is set
//  3. env (prefix DIARISK_), including values from a .env file in the working directory
func Load() (*Config, error) {
	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %w", ErrLoadConfig, err)
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like DIARISK_MODEL_PATH -> model_path (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
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

// Validate checks field values that the rest of the service relies on.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Predictor {
	case PredictorLocal, PredictorNone:
	case PredictorRemote:
		if c.RemoteURL == "" {
			return fmt.Errorf("%w: remote_url is required when predictor is remote", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown predictor %q", ErrInvalidConfig, c.Predictor)
	}
	if c.RemoteTimeoutMS <= 0 {
		return fmt.Errorf("%w: remote_timeout_ms must be positive", ErrInvalidConfig)
	}
	if _, err := estimate.ParseSkinFormula(c.SkinFormula); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limits must not be negative", ErrInvalidConfig)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst == 0 {
		return fmt.Errorf("%w: rate_limit_burst must be positive when rate_limit_rps is set", ErrInvalidConfig)
	}
	return nil
}
