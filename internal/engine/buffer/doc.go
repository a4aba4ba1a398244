// Package buffer provides the editor-facing byte buffer built on the rope.
//
// A Buffer is an immutable version of a byte sequence: every mutating
// operation returns a new Buffer value with a new revision number, and any
// previously obtained Buffer remains valid and unchanged. Undo history and
// other components may therefore hold onto old versions freely; versions
// share unaffected rope subtrees.
//
// Edits are expressed as range replacements. A batch of edits is applied
// atomically: either the whole batch validates and produces one new version,
// or the buffer is left untouched.
package buffer
