package editor

import (
	"bytes"
	"fmt"

	"hexad/internal/engine/buffer"
	"hexad/internal/engine/selection"
)

// yank copies every selection's covered bytes into the named register,
// one entry per selection. A selection resting on the end-of-file
// position yields an empty entry.
func (ed *Editor) yank(name rune) {
	s := ed.Current()
	regions := s.Selection().Regions()
	entries := make([][]byte, len(regions))
	for i, g := range regions {
		entries[i] = s.Buffer().SliceClamped(g.Range(s.Buffer().Len()))
	}
	ed.regs.Set(name, entries)
}

// deleteSelections removes every selection's covered bytes as one atomic
// batch, collapsing each selection to a point at its former start. The
// register is populated first, as delete always yanks.
func (ed *Editor) deleteSelections(name rune) error {
	s := ed.Current()
	ed.yank(name)

	bufLen := s.Buffer().Len()
	var edits []buffer.Edit
	for _, g := range s.Selection().Regions() {
		r := g.Range(bufLen)
		if !r.IsEmpty() {
			edits = append(edits, buffer.NewEdit(r, nil))
		}
	}
	if len(edits) == 0 {
		return nil
	}
	return s.ApplyEdits(edits, false)
}

// paste inserts register entries at every selection, before its start or
// after its end, repeating each entry count times. The new selections
// cover the inserted bytes. An unset register is a silent no-op.
func (ed *Editor) paste(name rune, after bool, count buffer.ByteOffset) error {
	s := ed.Current()
	sel := s.Selection()
	entries, ok := ed.regs.For(name, sel.Count())
	if !ok || count <= 0 {
		return nil
	}

	bufLen := s.Buffer().Len()
	regions := sel.Regions()
	edits := make([]buffer.Edit, len(regions))
	data := make([][]byte, len(regions))
	total := int64(0)
	for i, g := range regions {
		at := g.Start()
		if after {
			at = g.End() + 1
			if at > bufLen {
				at = bufLen
			}
		}
		data[i] = bytes.Repeat(entries[i], int(count))
		total += int64(len(data[i]))
		edits[i] = buffer.NewInsert(at, data[i])
	}
	if total == 0 {
		return nil
	}

	newBuf, err := s.Buffer().ApplyEdits(edits)
	if err != nil {
		return err
	}

	// Each edit's insertion lands at its original offset shifted by the
	// bytes inserted before it; the new region covers exactly what was
	// pasted there.
	out := make([]selection.Region, len(edits))
	var delta buffer.ByteOffset
	for i, e := range edits {
		start := e.Range.Start + delta
		n := buffer.ByteOffset(len(data[i]))
		if n == 0 {
			out[i] = selection.Point(start)
		} else {
			out[i] = selection.NewRegion(start, start+n-1)
		}
		delta += n
	}

	s.Apply(newBuf, selection.FromRegions(out).WithMain(sel.MainIndex()))
	return nil
}

// replaceAll overwrites every selected byte with b, preserving length and
// selections. Selections resting on the end-of-file position are skipped.
func (ed *Editor) replaceAll(b byte) error {
	s := ed.Current()
	bufLen := s.Buffer().Len()

	var edits []buffer.Edit
	for _, g := range s.Selection().Regions() {
		r := g.Range(bufLen)
		if !r.IsEmpty() {
			edits = append(edits, buffer.NewEdit(r, bytes.Repeat([]byte{b}, int(r.Len()))))
		}
	}
	if len(edits) == 0 {
		return nil
	}

	newBuf, err := s.Buffer().ApplyEdits(edits)
	if err != nil {
		return err
	}
	// Lengths are unchanged, so existing offsets stay valid.
	s.Apply(newBuf, s.Selection())
	return nil
}

// insertAtCursors inserts the same bytes at every cursor. With advance
// the cursors land after the inserted bytes, otherwise on their first
// byte.
func (ed *Editor) insertAtCursors(data []byte, advance bool) error {
	s := ed.Current()
	regions := s.Selection().Regions()
	edits := make([]buffer.Edit, len(regions))
	for i, g := range regions {
		edits[i] = buffer.NewInsert(g.Cursor, data)
	}
	return s.ApplyEdits(edits, advance)
}

// overwriteAtCursors replaces the byte under every cursor, then advances
// past it. Used to complete a half-assembled hex byte.
func (ed *Editor) overwriteAtCursors(b byte) error {
	s := ed.Current()
	bufLen := s.Buffer().Len()

	var edits []buffer.Edit
	for _, g := range s.Selection().Regions() {
		if g.Cursor < bufLen {
			edits = append(edits, buffer.NewEdit(buffer.NewRange(g.Cursor, g.Cursor+1), []byte{b}))
		}
	}
	if len(edits) == 0 {
		return nil
	}
	if err := s.ApplyEdits(edits, false); err != nil {
		return err
	}
	s.SetSelection(s.Selection().MoveBy(1, false, s.Buffer().Len()))
	return nil
}

// runFilter pipes every selection's bytes through the external transform
// script and replaces them with its output, as one atomic batch. The new
// selections cover the transformed bytes.
func (ed *Editor) runFilter(script string) error {
	if ed.filter == nil {
		return ErrNoFilter
	}
	s := ed.Current()
	bufLen := s.Buffer().Len()
	regions := s.Selection().Regions()

	edits := make([]buffer.Edit, len(regions))
	outs := make([][]byte, len(regions))
	for i, g := range regions {
		r := g.Range(bufLen)
		out, err := ed.filter(script, s.Buffer().SliceClamped(r))
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		edits[i] = buffer.NewEdit(r, out)
		outs[i] = out
	}

	newBuf, err := s.Buffer().ApplyEdits(edits)
	if err != nil {
		return err
	}

	regionsOut := make([]selection.Region, len(edits))
	var delta buffer.ByteOffset
	for i, e := range edits {
		start := e.Range.Start + delta
		n := buffer.ByteOffset(len(outs[i]))
		if n == 0 {
			regionsOut[i] = selection.Point(start)
		} else {
			regionsOut[i] = selection.NewRegion(start, start+n-1)
		}
		delta += n - e.Range.Len()
	}

	s.Apply(newBuf, selection.FromRegions(regionsOut).WithMain(s.Selection().MainIndex()))
	return nil
}

// deleteAtCursors removes the byte under every cursor (backward deletes
// the byte before it instead). No-op for cursors at the buffer edge.
func (ed *Editor) deleteAtCursors(backward bool) error {
	s := ed.Current()
	bufLen := s.Buffer().Len()

	var edits []buffer.Edit
	for _, g := range s.Selection().Regions() {
		at := g.Cursor
		if backward {
			at--
		}
		if at >= 0 && at < bufLen {
			edits = append(edits, buffer.NewEdit(buffer.NewRange(at, at+1), nil))
		}
	}
	if len(edits) == 0 {
		return nil
	}
	return s.ApplyEdits(edits, false)
}
