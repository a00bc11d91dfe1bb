package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://cms.example", "-t", "10", "-d", "/tmp/state", "-l", "warn", "-w", "800"},
			expected: &Config{
				GatewayBaseURL: "https://cms.example",
				RequestTimeout: 10 * time.Second,
				StateDir:       "/tmp/state",
				LogLevel:       "warn",
				LogFormat:      "text",
				ImageMaxWidth:  800,
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-x", "1", "-c", "cfg.json", "-w=0"},
			expected: func() *Config {
				c := base()
				c.ImageMaxWidth = 0
				return c
			}(),
		},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, wantErr: true},
		{name: "zero timeout", args: []string{"-t", "0"}, wantErr: true},
		{name: "negative width", args: []string{"-w=-5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
