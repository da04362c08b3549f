// Package config loads relviz.toml. Every setting is optional and
// falls back to a default.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const DefaultFileName = "relviz.toml"

type Config struct {
	Serve   ServeConfig       `toml:"serve"`
	Engines map[string]string `toml:"engines"`
	Style   StyleConfig       `toml:"style"`
}

type ServeConfig struct {
	// Addr is the listen address for the HTTP front end.
	Addr string `toml:"addr"`
	// MaxBodyBytes bounds the POST /render request body.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

type StyleConfig struct {
	// Path points at a user style file applied on top of the
	// default style.
	Path string `toml:"path"`
	// Default controls whether the embedded default style is used.
	Default bool `toml:"default"`
}

func Default() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Engines: map[string]string{},
		Style: StyleConfig{
			Default: true,
		},
	}
}

// Load reads a config file on top of the defaults. A missing file is
// not an error when path names the default location.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFileName {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}
	if cfg.Serve.MaxBodyBytes <= 0 {
		cfg.Serve.MaxBodyBytes = 1 << 20
	}
	return cfg, nil
}
