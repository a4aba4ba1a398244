package selection

import (
	"fmt"

	"hexad/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Region is one selection: an anchor and a cursor, both byte offsets into a
// single buffer version. The covered byte range is [Start, End] inclusive.
// Region is an immutable value type.
type Region struct {
	Anchor ByteOffset // Fixed end reached by extend commands
	Cursor ByteOffset // Active end that movement affects
}

// NewRegion creates a region from anchor to cursor.
func NewRegion(anchor, cursor ByteOffset) Region {
	return Region{Anchor: anchor, Cursor: cursor}
}

// Point creates a single-byte region at the given offset.
func Point(offset ByteOffset) Region {
	return Region{Anchor: offset, Cursor: offset}
}

// FromRange creates a forward region covering the half-open range r.
// An empty range produces a point at its start.
func FromRange(r buffer.Range) Region {
	if r.Len() <= 0 {
		return Point(r.Start)
	}
	return Region{Anchor: r.Start, Cursor: r.End - 1}
}

// Start returns the lower covered offset.
func (g Region) Start() ByteOffset {
	if g.Anchor <= g.Cursor {
		return g.Anchor
	}
	return g.Cursor
}

// End returns the upper covered offset (inclusive).
func (g Region) End() ByteOffset {
	if g.Anchor >= g.Cursor {
		return g.Anchor
	}
	return g.Cursor
}

// Len returns the number of covered bytes.
func (g Region) Len() ByteOffset {
	return g.End() - g.Start() + 1
}

// Range returns the covered bytes as a half-open buffer range, clamped to
// the given buffer length (a cursor resting on the end-of-file position
// covers nothing).
func (g Region) Range(bufLen ByteOffset) buffer.Range {
	return buffer.NewRange(g.Start(), g.End()+1).Clamp(bufLen)
}

// IsBackward returns true if the cursor is before the anchor.
func (g Region) IsBackward() bool {
	return g.Cursor < g.Anchor
}

// SwapEnds exchanges anchor and cursor, flipping the displayed direction
// without changing coverage.
func (g Region) SwapEnds() Region {
	return Region{Anchor: g.Cursor, Cursor: g.Anchor}
}

// Collapse reduces the region to a point at its cursor.
func (g Region) Collapse() Region {
	return Point(g.Cursor)
}

// WithDirection returns a region with the same coverage, backward if
// requested.
func (g Region) WithDirection(backward bool) Region {
	if backward == g.IsBackward() {
		return g
	}
	return g.SwapEnds()
}

// InheritDirection returns the region oriented like other.
func (g Region) InheritDirection(other Region) Region {
	return g.WithDirection(other.IsBackward())
}

// MoveCursor shifts the cursor by delta, clamped to [0, max].
// Without extend the anchor follows the cursor (the region collapses).
func (g Region) MoveCursor(delta ByteOffset, extend bool, max ByteOffset) Region {
	return g.CursorTo(g.Cursor+delta, extend, max)
}

// CursorTo places the cursor at target, clamped to [0, max].
// Without extend the anchor follows the cursor.
func (g Region) CursorTo(target ByteOffset, extend bool, max ByteOffset) Region {
	if target < 0 {
		target = 0
	}
	if target > max {
		target = max
	}
	if extend {
		return Region{Anchor: g.Anchor, Cursor: target}
	}
	return Point(target)
}

// Clamp limits both ends to [0, max].
func (g Region) Clamp(max ByteOffset) Region {
	a, c := g.Anchor, g.Cursor
	if a < 0 {
		a = 0
	} else if a > max {
		a = max
	}
	if c < 0 {
		c = 0
	} else if c > max {
		c = max
	}
	return Region{Anchor: a, Cursor: c}
}

// Overlaps reports whether the covered ranges of two regions intersect.
func (g Region) Overlaps(other Region) bool {
	return g.Start() <= other.End() && other.Start() <= g.End()
}

// Merge spans both regions, keeping g's direction.
func (g Region) Merge(other Region) Region {
	start := g.Start()
	if other.Start() < start {
		start = other.Start()
	}
	end := g.End()
	if other.End() > end {
		end = other.End()
	}
	merged := Region{Anchor: start, Cursor: end}
	return merged.WithDirection(g.IsBackward())
}

// String returns a debug representation.
func (g Region) String() string {
	if g.Anchor == g.Cursor {
		return fmt.Sprintf("Point(%d)", g.Cursor)
	}
	dir := "forward"
	if g.IsBackward() {
		dir = "backward"
	}
	return fmt.Sprintf("Region(%d..%d %s)", g.Start(), g.End(), dir)
}
