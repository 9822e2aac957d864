package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9090
sources:
  fmp:
    enabled: true
    api_key: "fmp-key"
  cmc:
    enabled: true
    api_key: "cmc-key"
cache:
  ttl: 5m
  default_lookback_days: 60
archive:
  enabled: true
  type: localfs
  path: /tmp/snapshots
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "fmp-key", cfg.Sources.FMP.APIKey)
	assert.Equal(t, "cmc-key", cfg.Sources.CMC.APIKey)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 60, cfg.Cache.DefaultLookback)
	assert.Equal(t, "localfs", cfg.Archive.Type)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_FMP_KEY", "secret-from-env")
	path := writeConfig(t, `
sources:
  fmp:
    api_key: "${TEST_FMP_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.Sources.FMP.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, true},
		{"zero lookback", func(c *Config) { c.Cache.DefaultLookback = 0 }, true},
		{"archive without path", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Path = ""
		}, true},
		{"s3 archive without bucket", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Type = "s3"
		}, true},
		{"unknown archive type", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Type = "tape"
		}, true},
		{"disabled archive skips checks", func(c *Config) {
			c.Archive.Enabled = false
			c.Archive.Type = "tape"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
