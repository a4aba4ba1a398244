package editor

import (
	"hexad/internal/engine/register"
	"hexad/internal/engine/selection"
	"hexad/internal/input/key"
)

// insertMode types bytes at every cursor. In hex entry two hexdigit
// keystrokes assemble one byte: the first inserts the high nibble and
// leaves the cursor on it, the second overwrites with the completed
// byte and advances. The whole stay in insert mode is one undo step.
type insertMode struct {
	hex      bool
	appendAt bool
	half     bool
	halfByte byte
}

func (m *insertMode) name() string {
	entry := "ascii"
	if m.hex {
		entry = "hex"
	}
	if m.appendAt {
		return "APPEND (" + entry + ")"
	}
	return "INSERT (" + entry + ")"
}

// enterInsert collapses every selection to its insertion point: the
// start for insert, one past the end for append.
func (ed *Editor) enterInsert(hex, appendAt bool) {
	s := ed.Current()
	s.BeginComposite()

	bufLen := s.Buffer().Len()
	target := func(g selection.Region) selection.ByteOffset {
		if appendAt {
			return g.End() + 1
		}
		return g.Start()
	}
	s.SetSelection(s.Selection().JumpEach(target, false, bufLen))

	ed.mode = &insertMode{hex: hex, appendAt: appendAt}
	ed.count = countState{}
}

// enterChange deletes the selections (yanking them) and drops into
// insert mode at the vacated positions, all as one undo step.
func (ed *Editor) enterChange(hex bool) error {
	s := ed.Current()
	s.BeginComposite()
	if err := ed.deleteSelections(register.Default); err != nil {
		s.Commit()
		return err
	}
	ed.mode = &insertMode{hex: hex}
	ed.count = countState{}
	return nil
}

func (m *insertMode) handleKey(ed *Editor, ev key.Event) error {
	s := ed.Current()

	switch ev {
	case key.Special(key.KeyEscape):
		s.Commit()
		ed.toNormal()
		return nil

	case key.Ctrl('o'):
		m.hex = !m.hex
		m.half = false
		return nil

	case key.Ctrl('n'):
		m.half = false
		return ed.insertAtCursors([]byte{0}, true)

	case key.Special(key.KeyBackspace):
		if m.half {
			// Remove the half-assembled byte under the cursor.
			m.half = false
			return ed.deleteAtCursors(false)
		}
		return ed.deleteAtCursors(true)

	case key.Special(key.KeyDelete):
		m.half = false
		return ed.deleteAtCursors(false)
	}

	if !ev.IsPlainRune() {
		return nil
	}

	if !m.hex {
		return ed.insertAtCursors([]byte(string(ev.Rune)), true)
	}

	d, ok := hexDigitValue(ev.Rune)
	if !ok {
		return nil
	}
	if !m.half {
		m.half = true
		m.halfByte = d << 4
		return ed.insertAtCursors([]byte{m.halfByte}, false)
	}
	assembled := m.halfByte | d
	m.half = false
	return ed.overwriteAtCursors(assembled)
}

func hexDigitValue(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
