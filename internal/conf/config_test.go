package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/acadex/research-scraper/internal/scraper/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
log:
  level: "debug"
  format: "console"
  output: "console"
cache:
  backend: "memory"
  ttl_seconds: 120
sources:
  - id: "arxiv"
    name: "arXiv"
    base_url: "http://export.arxiv.org"
    enabled: true
    rate_limit_delay: 0.5
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr())
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "memory", config.Cache.Backend)
	assert.Equal(t, 120, config.Cache.TTLSeconds)
	require.Len(t, config.Sources, 1)
	assert.Equal(t, types.SourceArxiv, config.Sources[0].ID)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: "info"
  format: "json"
  output: "console"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8500", config.Server.Addr())
	assert.Equal(t, "memory", config.Cache.Backend)
	assert.Len(t, config.Sources, 5)
}

func TestLoadConfigRedisDefaults(t *testing.T) {
	path := writeConfig(t, `
cache:
  backend: "redis"
  redis:
    addr: "redis-host:6379"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "redis-host:6379", config.Cache.Redis.Addr)
	require.NoError(t, config.Cache.Redis.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
