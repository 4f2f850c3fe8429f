package paint

import (
	"slices"

	"go.uber.org/zap"
)

// Snapshotter is the texture source a History records.
type Snapshotter interface {
	Snapshot() Snapshot
	LoadSnapshot(s Snapshot) error
}

// History is a linear undo/redo stack of full texture snapshots. The first
// entry is the state at construction. Capturing after an undo discards the
// redo tail.
//
// History is not safe for concurrent use.
type History struct {
	src      Snapshotter
	entries  []Snapshot
	index    int
	maxDepth int
	log      *zap.Logger
}

// NewHistory records the current state of src as the initial entry. A
// maxDepth of 0 keeps every snapshot; a positive maxDepth evicts the oldest
// entries once the stack grows beyond it.
func NewHistory(src Snapshotter, maxDepth int, opts ...Option) *History {
	o := buildOptions(opts)
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &History{
		src:      src,
		entries:  []Snapshot{src.Snapshot()},
		maxDepth: maxDepth,
		log:      o.log,
	}
}

// Capture appends the current texture state as a new entry.
func (h *History) Capture() {
	if h.index+1 < len(h.entries) {
		h.log.Debug("history truncated", zap.Int("dropped", len(h.entries)-h.index-1))
		h.entries = slices.Delete(h.entries, h.index+1, len(h.entries))
	}
	h.entries = append(h.entries, h.src.Snapshot())
	h.index = len(h.entries) - 1

	if h.maxDepth > 0 && len(h.entries) > h.maxDepth {
		n := len(h.entries) - h.maxDepth
		h.entries = slices.Delete(h.entries, 0, n)
		h.index -= n
		h.log.Debug("history evicted", zap.Int("count", n))
	}
	h.log.Debug("snapshot captured", zap.Int("index", h.index), zap.Int("len", len(h.entries)))
}

// Undo restores the previous entry. It returns false at the oldest entry or
// when the texture could not be restored.
func (h *History) Undo() bool {
	if h.index == 0 {
		return false
	}
	return h.restore(h.index - 1)
}

// Redo restores the next entry. It returns false at the newest entry or
// when the texture could not be restored.
func (h *History) Redo() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	return h.restore(h.index + 1)
}

func (h *History) restore(i int) bool {
	if err := h.src.LoadSnapshot(h.entries[i]); err != nil {
		h.log.Warn("restore snapshot failed", zap.Int("index", i), zap.Error(err))
		return false
	}
	h.index = i
	return true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the position of the current entry.
func (h *History) Index() int { return h.index }

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }
