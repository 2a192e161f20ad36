package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the househunt CLI.
//
// Units: RequestTimeout and RevalidateInterval are time.Duration values. A
// zero RevalidateInterval disables the background session check.
type Config struct {
	APIBaseURL         string
	RequestTimeout     time.Duration
	StateDir           string
	RevalidateInterval time.Duration
	LogLevel           string
	LogFormat          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.StateDir = ""
	c.RevalidateInterval = 5 * time.Minute
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig builds the Config from the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(context.Background(), os.Args[1:], envconfig.OsLookuper())
}

// Load applies defaults, then the JSON file named by -c/-config, then the
// HOUSEHUNT_* environment, then flags. Later sources take precedence.
func Load(ctx context.Context, args []string, env envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, env); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url is empty"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout %s is negative", c.RequestTimeout))
	}
	if c.RevalidateInterval < 0 {
		errs = append(errs, fmt.Errorf("revalidate interval %s is negative", c.RevalidateInterval))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q: want text or json", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
