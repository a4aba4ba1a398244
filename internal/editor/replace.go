package editor

import (
	"hexad/internal/engine/buffer"
	"hexad/internal/input/key"
)

// replaceMode overwrites every selected byte with each typed byte,
// preserving length. Hex entry assembles a byte from two keystrokes
// before applying it. Arrow keys move the cursor; any other unbound key
// drops back to normal mode.
type replaceMode struct {
	hex      bool
	half     bool
	halfByte byte
}

func (m *replaceMode) name() string {
	if m.hex {
		return "REPLACE (hex)"
	}
	return "REPLACE (ascii)"
}

func (m *replaceMode) handleKey(ed *Editor, ev key.Event) error {
	s := ed.Current()

	switch ev {
	case key.Special(key.KeyEscape):
		ed.toNormal()
		return nil

	case key.Ctrl('n'):
		ed.toNormal()
		return ed.replaceAll(0)

	case key.Special(key.KeyLeft), key.Special(key.KeyRight),
		key.Special(key.KeyUp), key.Special(key.KeyDown):
		if m.half {
			return nil
		}
		delta := buffer.ByteOffset(1)
		switch ev.Key {
		case key.KeyLeft:
			delta = -1
		case key.KeyUp:
			delta = -ed.perLine
		case key.KeyDown:
			delta = ed.perLine
		}
		s.SetSelection(s.Selection().MoveBy(delta, false, s.Buffer().Len()))
		return nil
	}

	if !ev.IsPlainRune() {
		ed.toNormal()
		return nil
	}

	if !m.hex {
		return ed.replaceAll(byte(ev.Rune))
	}

	d, ok := hexDigitValue(ev.Rune)
	if !ok {
		ed.toNormal()
		return nil
	}
	if !m.half {
		m.half = true
		m.halfByte = d << 4
		return nil
	}
	m.half = false
	return ed.replaceAll(m.halfByte | d)
}
