package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalYAML = `
server:
  port: 9000
database:
  host: db.internal
  user: app
  db_name: unioniq
redis:
  addr: cache.internal:6379
`

func TestLoad_MergesFileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)

	// Unset fields come from defaults.
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 50, cfg.Engine.PrecedentLimit)
	assert.Equal(t, 5*time.Second, cfg.Engine.QueryTimeout)
	assert.Equal(t, "unioniq:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("UNIONIQ_SERVER_PORT", "7777")
	t.Setenv("UNIONIQ_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad server mode", func(c *Config) { c.Server.Mode = "fast" }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing redis addr", func(c *Config) { c.Redis.Addr = "" }},
		{"kafka enabled without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"zero precedent limit", func(c *Config) { c.Engine.PrecedentLimit = -1 }},
		{"zero query timeout", func(c *Config) { c.Engine.QueryTimeout = -time.Second }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, NewDefaultConfig().Validate())
}
