package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.GatewayBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, ".sitecms", c.StateDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, 1920, c.ImageMaxWidth)
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"gateway_base_url": "https://from-json",
		"request_timeout":  "5s",
		"log_format":       "json",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "https://from-flag", "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "https://from-flag", cfg.GatewayBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-config", "/does/not/exist.json"})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-t", "abc"})
	assert.Error(t, err)
}
