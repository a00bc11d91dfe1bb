// Package config loads runtime configuration for the SiteCMS admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   Entity Gateway base URL
//	-t int      request timeout (seconds)
//	-d string   local state directory
//	-l string   log level
//	-w int      maximum image width (pixels)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "gateway_base_url": "https://cms.example.com",
//	  "request_timeout": "30s",
//	  "state_dir": "/var/lib/sitecms",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "image_max_width": 1600
//	}
//
// Primary API
//
//   - type Config                          holds the settings above
//   - func LoadConfig(args) (*Config, error) applies defaults, JSON, then flags
//   - func (*Config) LoadDefaults()        sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
