package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/househunt/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the rental API
//	-t int      request timeout in seconds
//	-d string   directory holding the session database
//	-i int      session revalidation interval in seconds (0 disables)
//	-l string   log level: debug, info, warn or error
//
// Arguments other than these are filtered out with flagx.FilterArgs so other
// components can keep their own flags.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("househunt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the rental API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StateDir, "d", cfg.StateDir, "state directory")
	interval := fs.Int("i", int(cfg.RevalidateInterval.Seconds()), "session revalidation interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	// Only explicitly given durations replace sub-second values from JSON
	// or the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.RevalidateInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
