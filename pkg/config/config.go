// Package config loads docgraph configuration from a TOML file.
//
// Configuration lives at ~/.config/docgraph/config.toml (override with
// the DOCGRAPH_CONFIG environment variable). All settings have working
// defaults, so a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/docgraph/docgraph/pkg/diagram"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "DOCGRAPH_CONFIG"

// Config holds all docgraph settings.
type Config struct {
	// Build defaults applied when the CLI or API request omits them.
	MaxDepth  int    `toml:"max_depth"`
	RootLabel string `toml:"root_label"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of: file, redis, none. Defaults to file.
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Defaults to ~/.cache/docgraph.
	Dir string `toml:"dir"`

	// Redis connection settings, used when Backend is redis.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Listen is the address the API binds to. Defaults to :8080.
	Listen string `toml:"listen"`

	// MongoURI enables the MongoDB graph store when set. When empty,
	// the server keeps graphs in memory.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth:  diagram.DefaultMaxDepth,
		RootLabel: diagram.DefaultRootLabel,
		Cache: CacheConfig{
			Backend: "file",
			Dir:     defaultCacheDir(),
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// Load reads the config file at the default location and merges it over
// the defaults. A missing file returns the defaults without error.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a specific config file and merges it over the defaults.
// A missing file returns the defaults without error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the config file location, honoring EnvConfigPath.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "docgraph", "config.toml")
}

// applyDefaults fills fields the file left empty.
func (c *Config) applyDefaults() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = diagram.DefaultMaxDepth
	}
	if c.RootLabel == "" {
		c.RootLabel = diagram.DefaultRootLabel
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "file"
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = defaultCacheDir()
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".docgraph-cache"
	}
	return filepath.Join(base, "docgraph")
}
