package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press. It is a comparable value type:
// keymaps index on it directly.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// RuneEvent creates an event for a character key with no modifiers.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Alt creates an event for an Alt-modified character key.
func Alt(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Mods: ModAlt}
}

// Ctrl creates an event for a Control-modified character key.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Mods: ModCtrl}
}

// Special creates an event for a non-character key.
func Special(k Key) Event {
	return Event{Key: k}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsPlainRune returns true for a character key with no Ctrl or Alt held.
// Shift does not count: it is already folded into the character.
func (e Event) IsPlainRune() bool {
	return e.IsRune() && !e.Mods.Has(ModCtrl|ModAlt)
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// String returns a canonical representation like "a", "C-x" or "A-Space".
func (e Event) String() string {
	var parts []string
	if e.Mods.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Mods.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Mods.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)
	return strings.Join(parts, "-")
}
