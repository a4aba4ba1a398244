package pattern

import (
	"bytes"

	"hexad/internal/engine/buffer"
	"hexad/internal/engine/rope"
)

// windowSize is how many haystack bytes are buffered per scan window.
const windowSize = 64 * 1024

// Iter lazily produces non-overlapping match ranges in ascending order.
// Callers may stop consuming at any point; nothing is computed ahead of
// the last Next call.
type Iter struct {
	rope    rope.Rope
	pat     Pattern
	pos     buffer.ByteOffset // next scan start
	end     buffer.ByteOffset // exclusive search end
	window  []byte
	winBase buffer.ByteOffset // absolute offset of window[0]
}

// FindAll scans searchRange left to right for the pattern.
// The range is clamped to the rope length. An empty pattern yields no
// matches. Wildcards match exactly one byte, so a pattern of only
// wildcards matches consecutive fixed-size blocks.
func FindAll(rp rope.Rope, p Pattern, searchRange buffer.Range) *Iter {
	r := searchRange.Clamp(rp.Len())
	return &Iter{
		rope: rp,
		pat:  p,
		pos:  r.Start,
		end:  r.End,
	}
}

// Next returns the next match range, or false when the scan is done.
func (it *Iter) Next() (buffer.Range, bool) {
	plen := buffer.ByteOffset(it.pat.Len())
	if plen == 0 {
		return buffer.Range{}, false
	}

	for it.pos+plen <= it.end {
		if !it.fill(plen) {
			return buffer.Range{}, false
		}

		// Scan the current window.
		limit := it.winBase + buffer.ByteOffset(len(it.window)) - plen + 1
		if limit > it.end-plen+1 {
			limit = it.end - plen + 1
		}

		for it.pos < limit {
			i := int(it.pos - it.winBase)

			// Fast-path: skip ahead to the first literal head byte.
			if head := it.pat.tokens[0]; !head.Wildcard {
				rel := bytes.IndexByte(it.window[i:i+int(limit-it.pos)], head.Byte)
				if rel < 0 {
					it.pos = limit
					break
				}
				i += rel
				it.pos += buffer.ByteOffset(rel)
			}

			if it.pat.matchAt(it.window, i) {
				match := buffer.Range{Start: it.pos, End: it.pos + plen}
				it.pos += plen // non-overlapping: advance past the match
				return match, true
			}
			it.pos++
		}
	}

	return buffer.Range{}, false
}

// fill ensures the window covers at least [pos, pos+plen).
func (it *Iter) fill(plen buffer.ByteOffset) bool {
	if it.pos >= it.winBase && it.pos+plen <= it.winBase+buffer.ByteOffset(len(it.window)) {
		return true
	}

	loadEnd := it.pos + windowSize
	if loadEnd < it.pos+plen {
		loadEnd = it.pos + plen
	}
	if loadEnd > it.end {
		loadEnd = it.end
	}

	it.window = it.rope.Slice(it.pos, loadEnd)
	it.winBase = it.pos
	return buffer.ByteOffset(len(it.window)) >= plen
}

// Collect drains the iterator into a slice, stopping after max matches.
// A max of zero or less collects everything.
func (it *Iter) Collect(max int) []buffer.Range {
	var out []buffer.Range
	for {
		m, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, m)
		if max > 0 && len(out) >= max {
			return out
		}
	}
}
