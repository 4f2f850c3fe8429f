package brush

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads presets whenever their file, or a preset file in their
// directory, changes on disk.
type Watcher struct {
	path    string
	dir     bool
	watcher *fsnotify.Watcher
	log     *zap.Logger
	updates chan []Preset
	done    chan struct{}
}

// Watch starts watching path, a preset file or directory as accepted by
// LoadPresets. A nil logger discards output.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("watch presets: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch presets: %w", err)
	}

	// Editors often replace files by rename, so a single file is watched
	// through its directory.
	target := path
	if !info.IsDir() {
		target = filepath.Dir(path)
	}
	if err := fw.Add(target); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch presets %s: %w", target, err)
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		dir:     info.IsDir(),
		watcher: fw,
		log:     log,
		updates: make(chan []Preset, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers the freshly loaded presets after each change. Only the
// latest set is kept if the receiver falls behind.
func (w *Watcher) Updates() <-chan []Preset {
	return w.updates
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			presets, err := LoadPresets(w.path)
			if err != nil {
				w.log.Warn("preset reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Info("presets reloaded", zap.String("path", w.path), zap.Int("count", len(presets)))
			w.publish(presets)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("preset watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if !w.dir {
		return name == w.path
	}
	return isPresetFile(name)
}

func (w *Watcher) publish(presets []Preset) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- presets
}
