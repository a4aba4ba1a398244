package renderer

import (
	"github.com/gdamore/tcell/v2"

	"hexad/internal/input/key"
)

// TranslateKey converts a tcell key event into the editor's key
// representation. Events with no editor meaning come back as the zero
// Event, which no mode binds.
func TranslateKey(ev *tcell.EventKey) key.Event {
	mods := key.ModNone
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}

	switch ev.Key() {
	case tcell.KeyRune:
		// Shift is already folded into the rune's case.
		return key.Event{Key: key.KeyRune, Rune: ev.Rune(), Mods: mods}
	case tcell.KeyEscape:
		return key.Event{Key: key.KeyEscape, Mods: mods}
	case tcell.KeyEnter:
		return key.Event{Key: key.KeyEnter, Mods: mods}
	case tcell.KeyTab:
		return key.Event{Key: key.KeyTab, Mods: mods}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Event{Key: key.KeyBackspace, Mods: mods}
	case tcell.KeyDelete:
		return key.Event{Key: key.KeyDelete, Mods: mods}
	case tcell.KeyInsert:
		return key.Event{Key: key.KeyInsert, Mods: mods}
	case tcell.KeyUp:
		return key.Event{Key: key.KeyUp, Mods: mods}
	case tcell.KeyDown:
		return key.Event{Key: key.KeyDown, Mods: mods}
	case tcell.KeyLeft:
		return key.Event{Key: key.KeyLeft, Mods: mods}
	case tcell.KeyRight:
		return key.Event{Key: key.KeyRight, Mods: mods}
	case tcell.KeyHome:
		return key.Event{Key: key.KeyHome, Mods: mods}
	case tcell.KeyEnd:
		return key.Event{Key: key.KeyEnd, Mods: mods}
	case tcell.KeyPgUp:
		return key.Event{Key: key.KeyPageUp, Mods: mods}
	case tcell.KeyPgDn:
		return key.Event{Key: key.KeyPageDown, Mods: mods}
	}

	// Ctrl-letter combinations arrive as control codes 0x01..0x1a.
	if c := ev.Key(); c >= tcell.KeyCtrlA && c <= tcell.KeyCtrlZ {
		return key.Ctrl(rune('a' + c - tcell.KeyCtrlA))
	}

	return key.Event{}
}
