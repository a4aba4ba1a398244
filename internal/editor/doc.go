// Package editor implements the modal command interpreter.
//
// An Editor owns the open sessions, the register store and the current
// input mode. One key event is processed completely before the next:
// every dispatched command is applied to the buffer and selection set as
// one atomic unit, and a failed command leaves both untouched and reports
// through the status message.
//
// Modes follow a tagged-state design: each pending input state (normal
// with an optional count, insert with a half-assembled hex byte, the
// split-unit prefix, pattern entry, the command line) is its own type
// carrying only the data needed to resolve the next key. Escape always
// returns to normal, discarding pending input without touching the
// buffer.
package editor
