// Package config loads flightmesh settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default]. Values that are
// present override the defaults field by field, so a file may set only
// max_range_km and keep everything else.
//
//	max_range_km = 7.5
//	base_color   = "blue"
//	palette      = ["gold", "red", "green"]
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	dir       = ""
//	redis_url = ""
//	ttl       = "24h"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// AppName names the config and cache directories.
const AppName = "flightmesh"

// Config is the full settings tree.
type Config struct {
	MaxRangeKm float64  `toml:"max_range_km"`
	BaseColor  string   `toml:"base_color"`
	Palette    []string `toml:"palette"`

	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures `flightmesh serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig configures artifact caching. RedisURL wins over Dir when set.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration that decodes from strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxRangeKm: points.DefaultMaxRangeKm,
		BaseColor:  points.BaseColor,
		Palette:    slices.Clone(points.DefaultPalette),
		Server:     ServerConfig{Addr: ":8080"},
		Cache:      CacheConfig{TTL: Duration{24 * time.Hour}},
	}
}

// Path returns the default config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the file at path on top of [Default] and validates the result.
// An empty path means [Path]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, keeping fields the document does not set,
// then validates.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks value ranges and color tags.
func (c Config) Validate() error {
	if !(c.MaxRangeKm > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "max_range_km must be positive, got %v", c.MaxRangeKm)
	}
	if err := errors.ValidateColor(c.BaseColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "base_color")
	}
	if len(c.Palette) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "palette cannot be empty")
	}
	for i, color := range c.Palette {
		if err := errors.ValidateColor(color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "palette[%d]", i)
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	return nil
}

// StoreOptions converts the point settings to store options.
func (c Config) StoreOptions() []points.Option {
	return []points.Option{
		points.WithMaxRange(c.MaxRangeKm),
		points.WithBaseColor(c.BaseColor),
		points.WithPalette(c.Palette),
	}
}
