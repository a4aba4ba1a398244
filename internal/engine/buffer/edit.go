package buffer

import (
	"fmt"
	"sort"
)

// Edit represents a single range replacement.
type Edit struct {
	Range Range  // The range to replace
	New   []byte // The replacement bytes
}

// NewEdit creates a new Edit.
func NewEdit(r Range, data []byte) Edit {
	return Edit{Range: r, New: data}
}

// NewInsert creates an Edit that inserts bytes at a position.
func NewInsert(offset ByteOffset, data []byte) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, New: data}
}

// NewDelete creates an Edit that deletes a range of bytes.
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %d bytes)", e.Range.Start, len(e.New))
	}
	if len(e.New) == 0 {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %d bytes", e.Range.String(), len(e.New))
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && len(e.New) == 0
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.New)) - e.Range.Len()
}

// sortEdits orders edits ascending by range start.
// Insertions at the same offset keep their relative order.
func sortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Range.Start < edits[j].Range.Start
	})
}

// validateEdits checks that sorted edits are in bounds and non-overlapping.
func validateEdits(edits []Edit, bufLen ByteOffset) error {
	prevEnd := ByteOffset(-1)
	for _, e := range edits {
		if !e.Range.IsValid() || e.Range.End > bufLen {
			return fmt.Errorf("%w: edit %s on buffer of %d bytes", ErrOutOfBounds, e, bufLen)
		}
		if e.Range.Start < prevEnd {
			return fmt.Errorf("%w: edit %s", ErrEditsOverlap, e)
		}
		prevEnd = e.Range.End
	}
	return nil
}

// TransformOffset maps an offset through a sorted batch of edits.
//
// Offsets strictly inside a replaced range collapse to the range start.
// assocAfter controls association at edit boundaries: when true, the offset
// lands after any bytes inserted at its position; when false it stays before
// them. This mirrors how selection ends track an edit batch.
func TransformOffset(edits []Edit, offset ByteOffset, assocAfter bool) ByteOffset {
	var delta ByteOffset
	for _, e := range edits {
		start, end := e.Range.Start, e.Range.End

		// Edit entirely before the offset: accumulate its length change.
		// A replacement ending exactly at the offset counts as before it;
		// an insertion exactly at the offset counts only with assocAfter.
		if end < offset || (end == offset && (end > start || assocAfter)) {
			delta += e.Delta()
			continue
		}

		// Offset strictly inside the replaced range: collapse to its start.
		if start < offset {
			if assocAfter {
				return start + delta + ByteOffset(len(e.New))
			}
			return start + delta
		}

		break
	}
	return offset + delta
}
