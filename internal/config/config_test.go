package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "seeded", cfg.Generator.TextureMode)
	assert.Equal(t, "BaseMint Genesis", cfg.Generator.CollectionName)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.False(t, cfg.MCP.Enabled)
	assert.Equal(t, "/mcp", cfg.MCP.Path)
	assert.Same(t, cfg, Get())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  read_timeout: 5s
log:
  level: debug
  format: json
generator:
  texture_mode: random
  collection_name: Preview
cache:
  enabled: false
mcp:
  enabled: true
  path: /tools/mcp
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "random", cfg.Generator.TextureMode)
	assert.Equal(t, "Preview", cfg.Generator.CollectionName)
	assert.Equal(t, "https://basemint-genesis.vercel.app", cfg.Generator.ExternalURL)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.MCP.Enabled)
	assert.Equal(t, "/tools/mcp", cfg.MCP.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BASEMINT_SERVER_PORT", "9191")
	t.Setenv("BASEMINT_GENERATOR_TEXTURE_MODE", "random")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "random", cfg.Generator.TextureMode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"texture mode", "generator:\n  texture_mode: sparkly\n"},
		{"port", "server:\n  port: 0\n"},
		{"cache size", "cache:\n  enabled: true\n  size: 0\n"},
		{"mcp path", "mcp:\n  enabled: true\n  path: mcp\n"},
		{"malformed yaml", "server: [port\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
