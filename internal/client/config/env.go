package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig mirrors the HOUSEHUNT_* variables. Unset variables stay zero
// and do not override earlier sources.
type envConfig struct {
	APIBaseURL         string        `env:"HOUSEHUNT_API_URL"`
	RequestTimeout     time.Duration `env:"HOUSEHUNT_REQUEST_TIMEOUT"`
	StateDir           string        `env:"HOUSEHUNT_STATE_DIR"`
	RevalidateInterval time.Duration `env:"HOUSEHUNT_REVALIDATE_INTERVAL"`
	LogLevel           string        `env:"HOUSEHUNT_LOG_LEVEL"`
	LogFormat          string        `env:"HOUSEHUNT_LOG_FORMAT"`
}

func parseEnv(ctx context.Context, cfg *Config, l envconfig.Lookuper) error {
	var ec envConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &ec, Lookuper: l}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.StateDir != "" {
		cfg.StateDir = ec.StateDir
	}
	if ec.RevalidateInterval != 0 {
		cfg.RevalidateInterval = ec.RevalidateInterval
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.LogFormat != "" {
		cfg.LogFormat = ec.LogFormat
	}
	return nil
}
