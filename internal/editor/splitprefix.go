package editor

import (
	"fmt"

	"hexad/internal/engine/buffer"
	"hexad/internal/input/key"
)

// splitPrefixMode waits for a split unit after alt-s: b/w/d/q/o pick a
// fixed width of 1/2/4/8/16 bytes, n splits on null runs, / asks for a
// pattern. Digits typed first multiply the width (or set the minimum
// null-run length). Any other key cancels.
type splitPrefixMode struct {
	count    buffer.ByteOffset
	hasCount bool
}

func (m *splitPrefixMode) name() string {
	if m.hasCount {
		return fmt.Sprintf("SPLIT (%d)", m.count)
	}
	return "SPLIT"
}

func (m *splitPrefixMode) handleKey(ed *Editor, ev key.Event) error {
	s := ed.Current()
	count := m.count
	if !m.hasCount {
		count = 1
	}

	var width buffer.ByteOffset
	switch ev {
	case key.RuneEvent('b'):
		width = 1
	case key.RuneEvent('w'):
		width = 2
	case key.RuneEvent('d'):
		width = 4
	case key.RuneEvent('q'):
		width = 8
	case key.RuneEvent('o'):
		width = 16

	case key.RuneEvent('n'):
		ed.toNormal()
		next, err := s.Selection().SplitNull(s.Buffer().Rope(), count)
		if err != nil {
			return err
		}
		s.SetSelection(next)
		return nil

	case key.RuneEvent('/'):
		ed.mode = newPatternMode(true, "SPLIT", acceptSelectInSelections)
		return nil

	default:
		if ev.IsPlainRune() && ev.Rune >= '0' && ev.Rune <= '9' {
			d := buffer.ByteOffset(ev.Rune - '0')
			if d == 0 && !m.hasCount {
				return nil
			}
			m.count = m.count*10 + d
			m.hasCount = true
			return nil
		}
		ed.toNormal()
		return nil
	}

	ed.toNormal()
	s.SetSelection(s.Selection().SplitWidth(width * count))
	return nil
}
