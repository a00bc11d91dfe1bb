package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/sitecms/internal/flagx"
	"github.com/dmitrijs2005/sitecms/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "30s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config.
type JsonConfig struct {
	GatewayBaseURL string         `json:"gateway_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDir       string         `json:"state_dir"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	ImageMaxWidth  *int           `json:"image_max_width"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag (see flagx.ConfigFile);
// without one nothing is loaded. Only keys present in the file override
// the current values.
func parseJson(cfg *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", jsonConfigFile, err)
	}

	if jc.GatewayBaseURL != "" {
		cfg.GatewayBaseURL = jc.GatewayBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.ImageMaxWidth != nil {
		cfg.ImageMaxWidth = *jc.ImageMaxWidth
	}
	return nil
}
