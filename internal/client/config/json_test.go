package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"gateway_base_url": "https://www.example",
		"request_timeout":  "10s",
		"state_dir":        "/srv/state",
		"log_level":        "error",
		"log_format":       "json",
		"image_max_width":  0,
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"request_timeout": 2000000000,
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, "https://www.example", cfg.GatewayBaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "/srv/state", cfg.StateDir)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 0, cfg.ImageMaxWidth)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "http://127.0.0.1:8000", cfg.GatewayBaseURL)
		assert.Equal(t, 1920, cfg.ImageMaxWidth)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{GatewayBaseURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, []string{"-a", "x"}))

		assert.Equal(t, "http://defaults:1234", cfg.GatewayBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJson(&Config{}, []string{"-config", bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}
