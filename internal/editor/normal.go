package editor

import (
	"fmt"

	"hexad/internal/engine/register"
	"hexad/internal/input/key"
)

// normalMode is the resting state: movement, selection surgery and entry
// points into every other mode.
type normalMode struct{}

func (normalMode) name() string { return "NORMAL" }

func (m normalMode) handleKey(ed *Editor, ev key.Event) error {
	if next, handled := ed.count.handleKey(ev); handled {
		ed.count = next
		return nil
	}

	count := ed.count.count()
	hasCount := ed.count.active
	s := ed.Current()
	sel := s.Selection()
	bufLen := s.Buffer().Len()

	handled := true
	var err error

	switch ev {
	// Movement: collapse and move the cursor.
	case key.RuneEvent('h'), key.Special(key.KeyLeft):
		s.SetSelection(sel.MoveBy(-count, false, bufLen))
	case key.RuneEvent('l'), key.Special(key.KeyRight):
		s.SetSelection(sel.MoveBy(count, false, bufLen))
	case key.RuneEvent('k'), key.Special(key.KeyUp):
		s.SetSelection(sel.MoveBy(-count*ed.perLine, false, bufLen))
	case key.RuneEvent('j'), key.Special(key.KeyDown):
		s.SetSelection(sel.MoveBy(count*ed.perLine, false, bufLen))

	// Extend: same movement with the anchor pinned.
	case key.RuneEvent('H'):
		s.SetSelection(sel.MoveBy(-count, true, bufLen))
	case key.RuneEvent('L'):
		s.SetSelection(sel.MoveBy(count, true, bufLen))
	case key.RuneEvent('K'):
		s.SetSelection(sel.MoveBy(-count*ed.perLine, true, bufLen))
	case key.RuneEvent('J'):
		s.SetSelection(sel.MoveBy(count*ed.perLine, true, bufLen))

	// Jump: with a pending count g jumps straight to that offset,
	// otherwise it asks for a boundary key.
	case key.RuneEvent('g'):
		if hasCount {
			s.SetSelection(sel.JumpTo(count, false, bufLen))
		} else {
			ed.mode = jumpToMode{}
		}
	case key.RuneEvent('G'):
		if hasCount {
			s.SetSelection(sel.JumpTo(count, true, bufLen))
		} else {
			ed.mode = jumpToMode{extend: true}
		}

	case key.RuneEvent(';'):
		s.SetSelection(sel.Collapse())
	case key.Alt(';'):
		s.SetSelection(sel.SwapEnds())
	case key.RuneEvent('%'):
		s.SetSelection(sel.SelectAll(bufLen))

	// Selection surgery. A count picks a selection by its 1-based
	// display index instead of the main one.
	case key.RuneEvent(' '):
		if hasCount && count > 0 {
			s.SetSelection(sel.KeepOnly(int(count) - 1))
		} else {
			s.SetSelection(sel.KeepOnlyMain())
		}
	case key.Alt(' '):
		var next = sel
		if hasCount && count > 0 {
			next, err = sel.Drop(int(count) - 1)
		} else {
			next, err = sel.DropMain()
		}
		if err == nil {
			s.SetSelection(next)
		}
	case key.RuneEvent('('):
		s.SetSelection(sel.CycleMain(-int(count)))
	case key.RuneEvent(')'):
		s.SetSelection(sel.CycleMain(int(count)))

	case key.RuneEvent('M'):
		n := sel.Main().Len()
		ed.SetInfo(fmt.Sprintf("%d = 0x%x bytes", n, n))

	// Registers and edits.
	case key.RuneEvent('y'):
		ed.yank(register.Default)
	case key.RuneEvent('d'):
		err = ed.deleteSelections(register.Default)
	case key.RuneEvent('p'):
		err = ed.paste(register.Default, true, count)
	case key.RuneEvent('P'):
		err = ed.paste(register.Default, false, count)
	case key.RuneEvent('c'):
		err = ed.enterChange(false)
	case key.RuneEvent('C'):
		err = ed.enterChange(true)

	case key.RuneEvent('i'):
		ed.enterInsert(false, false)
	case key.RuneEvent('I'):
		ed.enterInsert(true, false)
	case key.RuneEvent('a'):
		ed.enterInsert(false, true)
	case key.RuneEvent('A'):
		ed.enterInsert(true, true)
	case key.RuneEvent('r'):
		ed.mode = &replaceMode{}
	case key.RuneEvent('R'):
		ed.mode = &replaceMode{hex: true}

	// Pattern-driven selection.
	case key.RuneEvent('s'):
		ed.mode = newPatternMode(false, "SELECT", acceptSelectInSelections)
	case key.RuneEvent('S'):
		ed.mode = newPatternMode(true, "SELECT", acceptSelectInSelections)
	case key.Alt('s'):
		ed.mode = &splitPrefixMode{}

	case key.RuneEvent(':'):
		ed.mode = &commandMode{}

	case key.RuneEvent('u'):
		if !s.Undo() {
			ed.SetInfo("nothing left to undo")
		}
	case key.RuneEvent('U'):
		if !s.Redo() {
			ed.SetInfo("nothing left to redo")
		}

	default:
		handled = false
	}

	if handled {
		ed.count = countState{}
	}
	return err
}
