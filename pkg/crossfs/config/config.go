// Package config loads the settings of the crossfs command line tool.
//
// Settings are layered: built-in defaults, then a TOML or YAML file, then
// CROSSFS_ environment variables (CROSSFS_LOG_LEVEL sets log.level).
package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/crossfs/pkg/crossfs/operations"
	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CROSSFS_"

// Config holds the resolved settings.
type Config struct {
	LogLevel      string
	WalkStrategy  walk.Strategy
	WalkRecursive bool
	DirMode       fs.FileMode
	FileMode      fs.FileMode

	// File is the config file that was loaded, if any.
	File string
}

// defaults are the lowest configuration layer.
var defaults = map[string]interface{}{
	"log.level":      "warn",
	"walk.strategy":  walk.ChildrenFirst.String(),
	"walk.recursive": true,
	"dir.mode":       "0755",
	"file.mode":      "0644",
}

// Load reads the configuration. An explicit path must exist; without one
// the first of crossfs/config.toml and crossfs/config.yaml found in the XDG
// config directories is used, if any.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	return fromKoanf(k, path)
}

func findConfigFile() string {
	for _, name := range []string{"crossfs/config.toml", "crossfs/config.yaml", "crossfs/config.yml"} {
		if p, err := xdg.SearchConfigFile(name); err == nil {
			return p
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch {
	case strings.HasSuffix(path, ".toml"):
		return toml.Parser(), nil
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return yaml.Parser(), nil
	}
	return nil, fmt.Errorf("config file %s: unsupported format, want .toml or .yaml", path)
}

func fromKoanf(k *koanf.Koanf, path string) (*Config, error) {
	cfg := &Config{
		LogLevel:      strings.ToLower(k.String("log.level")),
		WalkRecursive: k.Bool("walk.recursive"),
		File:          path,
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	strategy, err := walk.ParseStrategy(k.String("walk.strategy"))
	if err != nil {
		return nil, fmt.Errorf("walk.strategy: %w", err)
	}
	cfg.WalkStrategy = strategy

	if cfg.DirMode, err = parseMode(k.Get("dir.mode")); err != nil {
		return nil, fmt.Errorf("dir.mode: %w", err)
	}
	if cfg.FileMode, err = parseMode(k.Get("file.mode")); err != nil {
		return nil, fmt.Errorf("file.mode: %w", err)
	}
	return cfg, nil
}

// parseMode accepts octal strings ("0755", "755") and numbers, which TOML
// and YAML produce for 0o755 literals.
func parseMode(v interface{}) (fs.FileMode, error) {
	var mode uint64
	switch m := v.(type) {
	case string:
		n, err := strconv.ParseUint(strings.TrimPrefix(m, "0o"), 8, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid mode %q", m)
		}
		mode = n
	case int:
		mode = uint64(m)
	case int64:
		mode = uint64(m)
	case uint64:
		mode = m
	case float64:
		mode = uint64(m)
	default:
		return 0, fmt.Errorf("invalid mode %v", v)
	}
	if mode > 0o7777 {
		return 0, fmt.Errorf("mode %o out of range", mode)
	}
	return fs.FileMode(mode), nil
}

// Operations returns the operation options the configuration describes.
func (c *Config) Operations(logger zerolog.Logger) operations.Options {
	return operations.Options{DirMode: c.DirMode, FileMode: c.FileMode, Logger: logger}
}

// Walk returns the walker options the configuration describes.
func (c *Config) Walk(logger zerolog.Logger) walk.Options {
	return walk.Options{Recursive: c.WalkRecursive, Strategy: c.WalkStrategy, Logger: logger}
}
