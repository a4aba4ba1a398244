package editor

import (
	"fmt"

	"hexad/internal/engine/buffer"
	"hexad/internal/input/key"
)

// countState accumulates an optional numeric count ahead of a normal-mode
// command. Digits build a decimal value; x toggles hex entry, where a-f
// become digits too. Backspace trims the last digit, escape cancels.
// The zero value means no count entered.
type countState struct {
	active bool
	hex    bool
	value  int64
}

// handleKey consumes one key if it belongs to count entry. Returns the
// next state and whether the key was consumed. Letters a-f are only
// digits while hex entry is on; otherwise they fall through to the
// command keymap.
func (c countState) handleKey(ev key.Event) (countState, bool) {
	switch {
	case ev == key.Special(key.KeyEscape):
		if !c.active {
			return c, false
		}
		return countState{}, true

	case ev == key.Special(key.KeyBackspace):
		if !c.active {
			return c, false
		}
		return c.trim(), true

	case ev == key.RuneEvent('x'):
		if !c.active {
			return countState{active: true, hex: true}, true
		}
		return countState{active: true, hex: !c.hex, value: c.value}, true

	case ev.IsPlainRune():
		d, ok := digitValue(ev.Rune)
		if !ok {
			return c, false
		}
		if d > 9 && (!c.active || !c.hex) {
			return c, false
		}
		return c.push(d), true
	}
	return c, false
}

func (c countState) push(d int64) countState {
	base := int64(10)
	if c.active && c.hex {
		base = 16
	}
	return countState{active: true, hex: c.active && c.hex, value: c.value*base + d}
}

func (c countState) trim() countState {
	base := int64(10)
	if c.hex {
		base = 16
	}
	if c.value >= base {
		return countState{active: true, hex: c.hex, value: c.value / base}
	}
	return countState{}
}

// count returns the accumulated value, defaulting to 1.
func (c countState) count() buffer.ByteOffset {
	if !c.active {
		return 1
	}
	return buffer.ByteOffset(c.value)
}

// String renders the pending count for the status line, empty when none.
func (c countState) String() string {
	switch {
	case !c.active:
		return ""
	case c.hex:
		return fmt.Sprintf(" (0x%x)", c.value)
	default:
		return fmt.Sprintf(" (%d)", c.value)
	}
}

func digitValue(r rune) (int64, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int64(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int64(r-'a') + 10, true
	}
	return 0, false
}
