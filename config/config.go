// Package config loads spritekit's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Window sizes the host window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Editor holds pixel and timeline editor defaults.
type Editor struct {
	FPS  int `toml:"fps"`
	Zoom int `toml:"zoom"`
}

// Preview overrides the runtime preview world.
type Preview struct {
	FloorY    float64    `toml:"floor_y"`
	Platform  [4]float64 `toml:"platform"` // x, y, w, h
	MatchFile string     `toml:"match_script"`
}

// Config is the full configuration document.
type Config struct {
	LogLevel  string  `toml:"log_level"`
	LogFormat string  `toml:"log_format"`
	Catalog   string  `toml:"catalog"`
	Window    Window  `toml:"window"`
	Editor    Editor  `toml:"editor"`
	Preview   Preview `toml:"preview"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "",
		Window:    Window{Width: 960, Height: 640, Title: "spritekit"},
		Editor:    Editor{FPS: 8, Zoom: 8},
		Preview: Preview{
			FloorY:   400,
			Platform: [4]float64{300, 280, 200, 20},
		},
	}
}

// DefaultPath is spritekit.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "spritekit", "spritekit.toml"), nil
}

// Load reads path (or the default path when empty) over the defaults.
// A missing file is not an error; exists reports whether one was read.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	c := Default()

	resolved = strings.TrimSpace(path)
	if resolved == "" {
		if resolved, err = DefaultPath(); err != nil {
			return nil, "", false, err
		}
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		exists = true
		if err := toml.NewDecoder(file).Decode(&c); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolved, exists, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.Catalog != "" {
		c.Catalog = filepath.Clean(c.Catalog)
	}
	if c.Window.Title == "" {
		c.Window.Title = "spritekit"
	}
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Editor.FPS < 1 || c.Editor.FPS > 60 {
		return fmt.Errorf("editor.fps: must be within 1..60, got %d", c.Editor.FPS)
	}
	if c.Editor.Zoom < 1 || c.Editor.Zoom > 16 {
		return fmt.Errorf("editor.zoom: must be within 1..16, got %d", c.Editor.Zoom)
	}
	if c.Preview.Platform[2] <= 0 || c.Preview.Platform[3] <= 0 {
		return errors.New("preview.platform: width and height must be positive")
	}
	return nil
}

// Sample is a commented configuration file.
const Sample = `# spritekit configuration
log_level = "info"
# console or json; empty picks console on a terminal
log_format = ""
# catalog = "assets/catalog.yaml"

[window]
width = 960
height = 640

[editor]
fps = 8
zoom = 8

[preview]
floor_y = 400.0
platform = [300.0, 280.0, 200.0, 20.0]
# match_script = "match.tengo"
`

// CreateSample writes Sample to path, refusing to overwrite.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(Sample), 0o644)
}
