// Package selection maintains the multi-selection state of a buffer session.
//
// A Region is an (anchor, cursor) pair of byte offsets; its covered range is
// inclusive on both ends, so a single selected byte has anchor == cursor.
// The cursor is the active end that movement affects; extend operations leave
// the anchor in place.
//
// A Set is an ordered sequence of regions plus a main index. Two invariants
// hold after every operation: regions are sorted by start offset, and no two
// covered ranges overlap. Any operation that would produce overlap merges
// the offenders into one spanning region. The set is never empty; collapsing
// to nothing resets it to a single zero-length region at offset 0. The main
// index is clamped when regions are removed and wraps when cycled.
//
// All operations clamp out-of-range offsets against the buffer length rather
// than failing; the cursor may rest on the end-of-file position one past the
// last byte.
package selection
