package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-d", "-l", "-w"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   Entity Gateway base URL
//	-t int      request timeout in seconds
//	-d string   local state directory
//	-l string   log level (debug, info, warn, error)
//	-w int      maximum image width in pixels, 0 to keep originals
//
// Note: args are filtered with flagx.FilterArgs to the flags handled here,
// so the -c/-config flag of the JSON loader does not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GatewayBaseURL, "a", cfg.GatewayBaseURL, "entity gateway base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StateDir, "d", cfg.StateDir, "local state directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.ImageMaxWidth, "w", cfg.ImageMaxWidth, "max image width (in pixels)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *timeout <= 0 {
		return fmt.Errorf("parse flags: timeout must be positive, got %d", *timeout)
	}
	if cfg.ImageMaxWidth < 0 {
		return fmt.Errorf("parse flags: image width must not be negative, got %d", cfg.ImageMaxWidth)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
