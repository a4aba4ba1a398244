// Package history records buffer edits for linear undo and redo.
//
// Each record captures the buffer value and selection set on both sides of
// an edit batch. Buffers share structure through the underlying chunk tree,
// so holding full snapshots costs memory proportional to the edits, not the
// file.
package history

import (
	"hexad/internal/engine/buffer"
	"hexad/internal/engine/selection"
)

// Record is one undoable step.
type Record struct {
	Before    buffer.Buffer
	After     buffer.Buffer
	SelBefore *selection.Set
	SelAfter  *selection.Set
}

// History is a linear undo/redo stack. A new edit discards any redoable
// records. The zero value is empty with unlimited depth.
type History struct {
	undo []Record
	redo []Record
	max  int // 0 means unlimited
}

// New creates a history keeping at most max records; max <= 0 means
// unlimited.
func New(max int) *History {
	if max < 0 {
		max = 0
	}
	return &History{max: max}
}

// SetLimit changes the retained record cap; max <= 0 means unlimited.
// Excess records are dropped on the next Push.
func (h *History) SetLimit(max int) {
	if max < 0 {
		max = 0
	}
	h.max = max
}

// Push records a completed edit and clears the redo stack.
func (h *History) Push(r Record) {
	h.undo = append(h.undo, r)
	h.redo = h.redo[:0]
	if h.max > 0 && len(h.undo) > h.max {
		// Drop the oldest; shift in place to keep the backing array.
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:h.max]
	}
}

// Undo pops the most recent record, moving it to the redo stack.
// Returns false when there is nothing to undo.
func (h *History) Undo() (Record, bool) {
	if len(h.undo) == 0 {
		return Record{}, false
	}
	r := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, r)
	return r, true
}

// Redo reapplies the most recently undone record.
// Returns false when there is nothing to redo.
func (h *History) Redo() (Record, bool) {
	if len(h.redo) == 0 {
		return Record{}, false
	}
	r := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, r)
	return r, true
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoDepth returns the number of undoable records.
func (h *History) UndoDepth() int {
	return len(h.undo)
}

// RedoDepth returns the number of redoable records.
func (h *History) RedoDepth() int {
	return len(h.redo)
}

// Clear drops all records.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
