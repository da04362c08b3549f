package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"relviz/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Serve.Addr)
	}
	if cfg.Serve.MaxBodyBytes != 1<<20 {
		t.Errorf("max body = %d", cfg.Serve.MaxBodyBytes)
	}
	if !cfg.Style.Default {
		t.Error("default style must be on by default")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relviz.toml")
	content := "[serve]\naddr = \":9999\"\n\n" +
		"[engines]\ndot = \"/opt/graphviz/bin/dot\"\n\n" +
		"[style]\npath = \"custom.style\"\ndefault = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Serve.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Serve.Addr)
	}
	if cfg.Serve.MaxBodyBytes != 1<<20 {
		t.Errorf("max body = %d, want default kept", cfg.Serve.MaxBodyBytes)
	}
	if cfg.Engines["dot"] != "/opt/graphviz/bin/dot" {
		t.Errorf("engines = %v", cfg.Engines)
	}
	if cfg.Style.Path != "custom.style" || cfg.Style.Default {
		t.Errorf("style = %+v", cfg.Style)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path must fail")
	}
}
