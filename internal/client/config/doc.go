// Package config loads runtime configuration for the househunt CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. HOUSEHUNT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the rental API
//	-t int      request timeout (seconds)
//	-d string   state directory for the session database
//	-i int      session revalidation interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "request_timeout": "10s",
//	  "state_dir": "/var/lib/househunt",
//	  "revalidate_interval": "5m",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// # Environment
//
//	HOUSEHUNT_API_URL, HOUSEHUNT_REQUEST_TIMEOUT, HOUSEHUNT_STATE_DIR,
//	HOUSEHUNT_REVALIDATE_INTERVAL, HOUSEHUNT_LOG_LEVEL, HOUSEHUNT_LOG_FORMAT
package config
