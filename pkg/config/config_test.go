package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docgraph/docgraph/pkg/diagram"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != diagram.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, diagram.DefaultMaxDepth)
	}
	if cfg.RootLabel != "root" {
		t.Errorf("RootLabel = %q, want root", cfg.RootLabel)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Server.Listen = %q, want :8080", cfg.Server.Listen)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Error("missing file should return defaults")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
max_depth = 32
root_label = "document"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[server]
listen = ":9090"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.MaxDepth != 32 {
		t.Errorf("MaxDepth = %d, want 32", cfg.MaxDepth)
	}
	if cfg.RootLabel != "document" {
		t.Errorf("RootLabel = %q, want document", cfg.RootLabel)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache config not loaded: %+v", cfg.Cache)
	}
	if cfg.Server.Listen != ":9090" || cfg.Server.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("server config not loaded: %+v", cfg.Server)
	}
	// Fields the file omitted keep their defaults
	if cfg.Cache.Dir == "" {
		t.Error("Cache.Dir should default when omitted")
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_depth = ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("malformed TOML should error")
	}
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	if Path() != "/tmp/custom.toml" {
		t.Errorf("Path = %q, want env override", Path())
	}
}
