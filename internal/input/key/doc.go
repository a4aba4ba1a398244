// Package key defines terminal-agnostic key event types.
//
// An Event pairs a Key with optional modifiers; character keys use KeyRune
// with the character in the Rune field. Event is a comparable value so mode
// keymaps can use it directly as a map key. The terminal backend translates
// its own event type into these before dispatch.
package key
