package brush

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPresets(t *testing.T) {
	presets := DefaultPresets()
	if len(presets) != 2 {
		t.Fatalf("len = %d, want 2", len(presets))
	}
	for _, p := range presets {
		if p.Hardness != 1 || p.Opacity != 1 || p.Flow != 1 {
			t.Errorf("%s: unexpected tip %+v", p.ID, p)
		}
		if p.SpacingPx() != 8 {
			t.Errorf("%s: spacing = %v, want 8", p.ID, p.SpacingPx())
		}
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog(nil)
	if c.Len() != 2 {
		t.Fatalf("empty catalog should fall back to defaults, got %d", c.Len())
	}
	if c.At(1).ID != "basic-32" || c.At(2).ID != "basic-16" || c.At(-1).ID != "basic-32" {
		t.Error("At should wrap around")
	}
	if _, err := c.Get("basic-16"); err != nil {
		t.Errorf("Get(basic-16): %v", err)
	}
	if _, err := c.Get("nope"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Get(nope) err = %v, want ErrPresetNotFound", err)
	}
}

const presetYAML = `
presets:
  - id: ink
    name: Ink
    size: 6
    hardness: 0.9
    flow: 0.5
    opacity: 1
    rotation: 45
    dynamics:
      pressureToSize: true
      jitter: 0.1
  - name: Airbrush
    size: 64
    hardness: 0
    flow: 0.2
    opacity: 0.3
    spacing: 4
`

func TestParsePresets(t *testing.T) {
	presets, err := ParsePresets([]byte(presetYAML))
	if err != nil {
		t.Fatalf("ParsePresets: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("len = %d, want 2", len(presets))
	}

	ink := presets[0]
	if !ink.Dynamics.PressureToSize || ink.Dynamics.PressureToOpacity {
		t.Errorf("ink dynamics = %+v", ink.Dynamics)
	}
	if ink.Extra["rotation"] != 45 {
		t.Errorf("rotation not carried through: %v", ink.Extra)
	}
	if ink.Dynamics.Extra["jitter"] != 0.1 {
		t.Errorf("jitter not carried through: %v", ink.Dynamics.Extra)
	}
	if ink.Spacing != nil {
		t.Error("ink should have no explicit spacing")
	}

	air := presets[1]
	if air.ID != "Airbrush" {
		t.Errorf("missing id should default to name, got %q", air.ID)
	}
	if air.SpacingPx() != 4 {
		t.Errorf("spacing = %v, want 4", air.SpacingPx())
	}
}

func TestParsePresetsList(t *testing.T) {
	presets, err := ParsePresets([]byte("- id: a\n  size: 3\n- id: b\n  size: 5\n"))
	if err != nil {
		t.Fatalf("ParsePresets: %v", err)
	}
	if len(presets) != 2 || presets[1].Size != 5 {
		t.Errorf("got %+v", presets)
	}
}

func TestLoadPresetsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(presetYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SavePresets(filepath.Join(dir, "b.yml"), DefaultPresets()); err != nil {
		t.Fatalf("SavePresets: %v", err)
	}

	presets, err := LoadPresets(dir)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(presets) != 4 {
		t.Fatalf("len = %d, want 4", len(presets))
	}
	if presets[0].ID != "ink" || presets[2].ID != "basic-16" {
		t.Errorf("unexpected order: %s, %s", presets[0].ID, presets[2].ID)
	}
	if presets[3].SpacingPx() != 8 {
		t.Errorf("saved spacing lost: %v", presets[3].SpacingPx())
	}
}

func TestLoadPresetsMissing(t *testing.T) {
	if _, err := LoadPresets(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing path")
	}
}
