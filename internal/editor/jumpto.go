package editor

import (
	"hexad/internal/engine/selection"
	"hexad/internal/input/key"
)

// jumpToMode waits for one boundary key after g or G: h/l jump to the
// start/end of the display row, k/j to the start/end of the buffer.
// Any other key cancels.
type jumpToMode struct {
	extend bool
}

func (m jumpToMode) name() string {
	if m.extend {
		return "EXTEND"
	}
	return "JUMP"
}

func (m jumpToMode) handleKey(ed *Editor, ev key.Event) error {
	s := ed.Current()
	bufLen := s.Buffer().Len()
	perLine := ed.perLine

	var target func(selection.Region) selection.ByteOffset
	switch ev {
	case key.RuneEvent('h'), key.Special(key.KeyLeft):
		target = func(g selection.Region) selection.ByteOffset {
			return g.Cursor - g.Cursor%perLine
		}
	case key.RuneEvent('l'), key.Special(key.KeyRight):
		target = func(g selection.Region) selection.ByteOffset {
			return g.Cursor - g.Cursor%perLine + perLine - 1
		}
	case key.RuneEvent('k'), key.Special(key.KeyUp):
		target = func(selection.Region) selection.ByteOffset { return 0 }
	case key.RuneEvent('j'), key.Special(key.KeyDown):
		target = func(selection.Region) selection.ByteOffset { return bufLen }
	default:
		ed.toNormal()
		return nil
	}

	s.SetSelection(s.Selection().JumpEach(target, m.extend, bufLen))
	ed.toNormal()
	return nil
}
