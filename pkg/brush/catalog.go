package brush

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrPresetNotFound is returned by Catalog.Get for an unknown id.
var ErrPresetNotFound = errors.New("brush preset not found")

// DefaultPresets returns the built-in fallback catalog.
func DefaultPresets() []Preset {
	return []Preset{
		{ID: "basic-16", Name: "Basic Round 16", Size: 16, Hardness: 1, Flow: 1, Opacity: 1, Spacing: Float(8)},
		{ID: "basic-32", Name: "Basic Round 32", Size: 32, Hardness: 1, Flow: 1, Opacity: 1, Spacing: Float(8)},
	}
}

// presetFile is the on-disk layout of a preset collection.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Catalog is an ordered list of presets with id lookup.
type Catalog struct {
	presets []Preset
}

// NewCatalog creates a catalog. An empty input yields the default presets.
func NewCatalog(presets []Preset) *Catalog {
	if len(presets) == 0 {
		presets = DefaultPresets()
	}
	return &Catalog{presets: slices.Clone(presets)}
}

// Len returns the number of presets.
func (c *Catalog) Len() int { return len(c.presets) }

// At returns the preset at index i, wrapping around.
func (c *Catalog) At(i int) Preset {
	n := len(c.presets)
	return c.presets[((i%n)+n)%n]
}

// Get returns the preset with the given id.
func (c *Catalog) Get(id string) (Preset, error) {
	for _, p := range c.presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%q: %w", id, ErrPresetNotFound)
}

// Presets returns a copy of the catalog contents.
func (c *Catalog) Presets() []Preset {
	return slices.Clone(c.presets)
}

// ParsePresets decodes a YAML preset collection. Both a top-level list and a
// document with a "presets" key are accepted.
func ParsePresets(data []byte) ([]Preset, error) {
	var list []Preset
	if err := yaml.Unmarshal(data, &list); err == nil {
		return fillIDs(list), nil
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return fillIDs(f.Presets), nil
}

// LoadPresets reads one preset file, or every *.yaml / *.yml file in a
// directory in name order.
func LoadPresets(path string) ([]Preset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return loadPresetFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read preset dir: %w", err)
	}
	var out []Preset
	for _, e := range entries {
		if e.IsDir() || !isPresetFile(e.Name()) {
			continue
		}
		presets, err := loadPresetFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, presets...)
	}
	return out, nil
}

func isPresetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func loadPresetFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	presets, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}

// SavePresets writes presets as a YAML collection.
func SavePresets(path string, presets []Preset) error {
	data, err := yaml.Marshal(presetFile{Presets: presets})
	if err != nil {
		return fmt.Errorf("marshal presets: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preset dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func fillIDs(presets []Preset) []Preset {
	for i := range presets {
		if presets[i].ID == "" {
			presets[i].ID = presets[i].Name
		}
	}
	return presets
}
