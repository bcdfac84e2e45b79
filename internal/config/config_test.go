package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StWron/customnode4portfolio/pkg/bus"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, DefaultChannelName, cfg.Channel.Default)
	assert.Equal(t, string(bus.TransportMemory), cfg.Channel.Transport)
	assert.Equal(t, int64(DefaultMaxPayloadSize), cfg.Channel.MaxPayloadSize)
	assert.True(t, cfg.ChecksumEnabled())
	assert.Equal(t, DefaultAssetRoot, cfg.Asset.Root)
	assert.Equal(t, DefaultArchiveRoot, cfg.Archive.Root)
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
version: "1.0"
channel:
  default: PROJ_CH
  transport: redis
  checksum: false
  max_payload_size: 1048576
redis:
  addr: localhost:6379
  db: 2
asset:
  root: work/assets
archive:
  root: work/archive
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "PROJ_CH", cfg.Channel.Default)
		assert.False(t, cfg.ChecksumEnabled())
		assert.Equal(t, int64(1048576), cfg.Channel.MaxPayloadSize)
		assert.Equal(t, "work/assets", cfg.Asset.Root)
		assert.Equal(t, DefaultNamespace, cfg.Redis.Namespace)

		opts := cfg.BusOptions()
		assert.Equal(t, bus.TransportRedis, opts.Transport)
		assert.Equal(t, "localhost:6379", opts.RedisAddr)
		assert.Equal(t, 2, opts.RedisDB)
	})

	t.Run("minimal config gets defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `version: "1.0"`))
		require.NoError(t, err)
		assert.Equal(t, DefaultChannelName, cfg.Channel.Default)
		assert.Equal(t, string(bus.TransportMemory), cfg.Channel.Transport)
		assert.Equal(t, DefaultCacheDir, cfg.Channel.CacheDir)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version: [broken"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("wrong version", func(t *testing.T) {
		_, err := Load(writeConfig(t, `version: "2.0"`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported version")
	})

	t.Run("unknown transport", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version: \"1.0\"\nchannel:\n  transport: carrier-pigeon\n"))
		assert.Error(t, err)
	})

	t.Run("redis transport requires addr", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version: \"1.0\"\nchannel:\n  transport: redis\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis.addr is required")
	})

	t.Run("negative payload cap", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version: \"1.0\"\nchannel:\n  max_payload_size: -1\n"))
		assert.Error(t, err)
	})
}
