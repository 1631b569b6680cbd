package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists || path == "" {
		t.Fatalf("expected missing file, got exists=%v path=%q", exists, path)
	}
	if cfg.Editor.FPS != 8 || cfg.Window.Width != 960 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spritekit.toml")
	body := `
log_level = " DEBUG "
catalog = "assets//catalog.yaml"

[editor]
fps = 24

[preview]
floor_y = 300.0
platform = [10.0, 20.0, 30.0, 40.0]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || cfg.LogLevel != "debug" || cfg.Editor.FPS != 24 || cfg.Editor.Zoom != 8 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Catalog != filepath.Join("assets", "catalog.yaml") {
		t.Fatalf("catalog path not cleaned: %q", cfg.Catalog)
	}
	if cfg.Preview.FloorY != 300 || cfg.Preview.Platform[3] != 40 {
		t.Fatalf("preview not decoded: %+v", cfg.Preview)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"fps", func(c *Config) { c.Editor.FPS = 61 }, "editor.fps"},
		{"zoom", func(c *Config) { c.Editor.Zoom = 0 }, "editor.zoom"},
		{"platform", func(c *Config) { c.Preview.Platform[2] = 0 }, "preview.platform"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %s error, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "spritekit.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
	if err := CreateSample(path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
}
