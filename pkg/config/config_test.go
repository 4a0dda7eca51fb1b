package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/points"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxRangeKm != 7.5 {
		t.Errorf("MaxRangeKm = %v, want 7.5", cfg.MaxRangeKm)
	}
	if cfg.BaseColor != "blue" {
		t.Errorf("BaseColor = %q, want blue", cfg.BaseColor)
	}
	if !reflect.DeepEqual(cfg.Palette, points.DefaultPalette) {
		t.Errorf("Palette = %v, want %v", cfg.Palette, points.DefaultPalette)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}

	cfg.Palette[0] = "pink"
	if points.DefaultPalette[0] == "pink" {
		t.Error("Default() must not alias the package palette")
	}
}

func TestParsePartial(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
max_range_km = 10

[cache]
ttl = "90m"
redis_url = "redis://localhost:6379/0"
`), &cfg)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.MaxRangeKm != 10 {
		t.Errorf("MaxRangeKm = %v, want 10", cfg.MaxRangeKm)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("TTL = %v, want 90m", cfg.Cache.TTL)
	}
	if cfg.Cache.RedisURL == "" {
		t.Error("RedisURL not decoded")
	}
	if cfg.BaseColor != "blue" || cfg.Server.Addr != ":8080" {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", `max_range_km = `},
		{"zero range", `max_range_km = 0`},
		{"negative range", `max_range_km = -2`},
		{"empty palette", `palette = []`},
		{"bad palette color", `palette = ["red", "not a color"]`},
		{"bad base color", `base_color = "blue,red"`},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
		{"unknown key", `max_rnage_km = 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(tt.doc), &cfg)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Parse() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \"127.0.0.1:9000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", AppName, "config.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := Default()
	cfg.MaxRangeKm = 100
	cfg.Palette = []string{"red"}
	s := points.NewStore(cfg.StoreOptions()...)
	if s.MaxRangeKm() != 100 {
		t.Errorf("store range = %v, want 100", s.MaxRangeKm())
	}
	s.Add(50, 20)
	p, err := s.Add(50.5, 20)
	if err != nil {
		t.Fatalf("Add within 100 km error = %v", err)
	}
	if p.Color != "red" {
		t.Errorf("color = %q, want red", p.Color)
	}
}
