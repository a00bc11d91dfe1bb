package config

import "time"

// Config holds runtime settings for the SiteCMS admin console.
//
// Fields:
//   - GatewayBaseURL: scheme://host[:port] of the Entity Gateway.
//   - RequestTimeout: upper bound for one Gateway request.
//   - StateDir: directory holding the local SQLite state.
//   - LogLevel, LogFormat: diagnostics verbosity and handler ("text" or "json").
//   - ImageMaxWidth: uploads wider than this are scaled down; 0 disables it.
type Config struct {
	GatewayBaseURL string
	RequestTimeout time.Duration
	StateDir       string
	LogLevel       string
	LogFormat      string
	ImageMaxWidth  int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
	c.StateDir = ".sitecms"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ImageMaxWidth = 1920
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
