// Package catalog loads the external asset catalog: a YAML manifest of
// named bitmaps with their category and frame count.
package catalog

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/milk9111/spritekit/binding"
	"github.com/milk9111/spritekit/raster"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("catalog: entry not found")

// Entry is one catalog record.
type Entry struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	Frames   int    `yaml:"frames"`
}

// Manifest is the on-disk catalog document.
type Manifest struct {
	Assets []Entry `yaml:"assets"`
}

// Catalog is a loaded manifest plus the bitmaps decoded from it.
type Catalog struct {
	Path    string
	Dir     string
	Entries []Entry

	images map[string]*image.RGBA
}

// Parse decodes a manifest document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("catalog: unmarshal: %w", err)
	}
	for i := range m.Assets {
		e := &m.Assets[i]
		if e.ID == "" {
			e.ID = e.File
		}
		if e.Frames < 1 {
			e.Frames = 1
		}
	}
	return m, nil
}

// Load reads the manifest at path. Bitmaps are decoded by LoadImages.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: load %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: load %s: %w", path, err)
	}
	return &Catalog{
		Path:    path,
		Dir:     filepath.Dir(path),
		Entries: m.Assets,
		images:  make(map[string]*image.RGBA),
	}, nil
}

// Entry returns the entry with id.
func (c *Catalog) Entry(id string) (Entry, error) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// FilePath resolves an entry's file relative to the manifest directory.
func (c *Catalog) FilePath(e Entry) string {
	if filepath.IsAbs(e.File) {
		return e.File
	}
	return filepath.Join(c.Dir, filepath.FromSlash(e.File))
}

// DecodeEntry decodes the bitmap of one entry from disk.
func (c *Catalog) DecodeEntry(e Entry) (*image.RGBA, error) {
	f, err := os.Open(c.FilePath(e))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", raster.ErrDecode, e.File, err)
	}
	defer f.Close()
	img, err := raster.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", e.File, err)
	}
	return img, nil
}

// LoadImages decodes every entry. Entries that fail to decode are logged
// and left without a bitmap; the number of failures is returned.
func (c *Catalog) LoadImages(logger *slog.Logger) int {
	failed := 0
	for _, e := range c.Entries {
		img, err := c.DecodeEntry(e)
		if err != nil {
			failed++
			if logger != nil {
				logger.Warn("catalog entry decode failed", "id", e.ID, "file", e.File, "error", err)
			}
			continue
		}
		c.images[e.ID] = img
	}
	return failed
}

// Image returns the decoded bitmap of an entry, if loaded.
func (c *Catalog) Image(id string) *image.RGBA {
	return c.images[id]
}

// SetImage replaces the in-memory bitmap of an entry, as after a save.
func (c *Catalog) SetImage(id string, img *image.RGBA, frames int) {
	for i := range c.Entries {
		if c.Entries[i].ID != id {
			continue
		}
		if frames > 0 {
			c.Entries[i].Frames = frames
		}
		c.images[id] = img
		return
	}
}

// Candidates lists the entries in manifest order for slot binding.
func (c *Catalog) Candidates() []binding.Candidate {
	out := make([]binding.Candidate, 0, len(c.Entries))
	for _, e := range c.Entries {
		out = append(out, binding.Candidate{
			ID:       e.ID,
			Category: e.Category,
			Name:     e.Name,
			File:     e.File,
			Frames:   e.Frames,
			Image:    c.images[e.ID],
		})
	}
	return out
}
