package brush

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const watchTimeout = 5 * time.Second

func writePresets(t *testing.T, path string, presets ...Preset) {
	t.Helper()
	if err := SavePresets(path, presets); err != nil {
		t.Fatalf("SavePresets: %v", err)
	}
}

func waitUpdate(t *testing.T, w *Watcher, want int) []Preset {
	t.Helper()
	deadline := time.After(watchTimeout)
	for {
		select {
		case p := <-w.Updates():
			// Several events may fire for one save; wait for the full set.
			if len(p) == want {
				return p
			}
		case <-deadline:
			t.Fatalf("no update with %d presets within %v", want, watchTimeout)
			return nil
		}
	}
}

func TestWatchDirectory(t *testing.T) {
	dir := t.TempDir()
	writePresets(t, filepath.Join(dir, "a.yaml"), Preset{ID: "a", Name: "A", Size: 4})

	w, err := Watch(dir, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writePresets(t, filepath.Join(dir, "b.yml"), Preset{ID: "b", Name: "B", Size: 8})
	got := waitUpdate(t, w, 2)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("reloaded ids = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	writePresets(t, path, Preset{ID: "a", Name: "A", Size: 4})

	w, err := Watch(path, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writePresets(t, path, Preset{ID: "a", Name: "A", Size: 4}, Preset{ID: "c", Name: "C", Size: 2})
	got := waitUpdate(t, w, 2)
	if got[1].ID != "c" {
		t.Errorf("second preset = %q, want c", got[1].ID)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	writePresets(t, path, Preset{ID: "a", Name: "A", Size: 4})

	w, err := Watch(path, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-w.Updates():
		t.Errorf("unexpected update %+v", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissing(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for a missing path")
	}
}
