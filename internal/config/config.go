// Package config loads and validates pipeline.yml, the project-level
// configuration shared by the CLI and the node constructors.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/StWron/customnode4portfolio/pkg/bus"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "pipeline.yml"

// Defaults applied by Validate when fields are omitted.
const (
	DefaultChannelName    = "MASTER_CH"
	DefaultCacheDir       = ".cache/channels"
	DefaultNamespace      = "default"
	DefaultAssetRoot      = "output/Asset_Library"
	DefaultArchiveRoot    = "output/Archive_Data"
	DefaultMaxPayloadSize = 100 * 1024 * 1024
)

// Config represents the top-level pipeline.yml configuration.
type Config struct {
	Version string        `yaml:"version"`
	Channel ChannelConfig `yaml:"channel"`
	Redis   *RedisConfig  `yaml:"redis,omitempty"`
	Asset   PathConfig    `yaml:"asset"`
	Archive PathConfig    `yaml:"archive"`
}

// ChannelConfig tunes the bus and the sender.
type ChannelConfig struct {
	Default        string `yaml:"default"`                    // default channel name
	Transport      string `yaml:"transport"`                  // memory | file | redis
	CacheDir       string `yaml:"cache_dir,omitempty"`        // file transport
	Checksum       *bool  `yaml:"checksum,omitempty"`         // default true
	MaxPayloadSize int64  `yaml:"max_payload_size,omitempty"` // bytes
}

// RedisConfig locates the Redis server for the redis transport.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// PathConfig roots one on-disk tree.
type PathConfig struct {
	Root string `yaml:"root"`
}

// Default returns the configuration used when no pipeline.yml exists.
func Default() *Config {
	cfg := &Config{
		Version: "1.0",
		Channel: ChannelConfig{Transport: string(bus.TransportMemory)},
	}
	// Validate cannot fail on these defaults; it only fills in the rest.
	_ = cfg.Validate()
	return cfg
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate performs strict validation and fills in defaults.
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Channel.Default == "" {
		c.Channel.Default = DefaultChannelName
	}
	if c.Channel.Transport == "" {
		c.Channel.Transport = string(bus.TransportMemory)
	}
	if err := bus.Transport(c.Channel.Transport).Validate(); err != nil {
		return fmt.Errorf("channel.transport: %w", err)
	}
	if c.Channel.CacheDir == "" {
		c.Channel.CacheDir = DefaultCacheDir
	}
	if c.Channel.MaxPayloadSize < 0 {
		return fmt.Errorf("channel.max_payload_size must be >= 0, got %d", c.Channel.MaxPayloadSize)
	}
	if c.Channel.MaxPayloadSize == 0 {
		c.Channel.MaxPayloadSize = DefaultMaxPayloadSize
	}
	if c.Channel.Checksum == nil {
		enabled := true
		c.Channel.Checksum = &enabled
	}

	if bus.Transport(c.Channel.Transport) == bus.TransportRedis {
		if c.Redis == nil || c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis transport")
		}
	}
	if c.Redis != nil && c.Redis.Namespace == "" {
		c.Redis.Namespace = DefaultNamespace
	}

	if c.Asset.Root == "" {
		c.Asset.Root = DefaultAssetRoot
	}
	if c.Archive.Root == "" {
		c.Archive.Root = DefaultArchiveRoot
	}

	return nil
}

// BusOptions maps the configuration to the bus factory options.
func (c *Config) BusOptions() bus.Options {
	opts := bus.Options{
		Transport: bus.Transport(c.Channel.Transport),
		CacheDir:  c.Channel.CacheDir,
	}
	if c.Redis != nil {
		opts.RedisAddr = c.Redis.Addr
		opts.RedisDB = c.Redis.DB
		opts.Namespace = c.Redis.Namespace
	}
	return opts
}

// ChecksumEnabled reports whether senders should checksum payloads.
func (c *Config) ChecksumEnabled() bool {
	return c.Channel.Checksum == nil || *c.Channel.Checksum
}
