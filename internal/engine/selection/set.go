package selection

import (
	"errors"
	"sort"

	"hexad/internal/engine/buffer"
)

// Errors reported by selection operations. Both are operator-facing and
// recoverable: the set is left unchanged.
var (
	// ErrEmptySelection reports an operation that would remove the last
	// selection.
	ErrEmptySelection = errors.New("would remove the last selection")

	// ErrNoMatch reports a pattern selection that matched nothing.
	ErrNoMatch = errors.New("no match")
)

// Set is an ordered sequence of non-overlapping regions with a main index.
// Mutating methods return a new Set; the receiver is never modified, so a
// Set may be shared with undo history or a renderer snapshot.
type Set struct {
	regions []Region
	main    int
}

// NewSet creates a set holding a single point at offset 0.
func NewSet() *Set {
	return &Set{regions: []Region{Point(0)}}
}

// FromRegions creates a normalized set from the given regions.
// An empty input yields the default single point at 0. The main index is
// the last region.
func FromRegions(regions []Region) *Set {
	if len(regions) == 0 {
		return NewSet()
	}
	owned := make([]Region, len(regions))
	copy(owned, regions)
	sortRegions(owned)
	merged, mainIdx := mergeSorted(owned, len(owned)-1)
	return &Set{regions: merged, main: mainIdx}
}

// Regions returns a copy of all regions in order.
func (s *Set) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Count returns the number of regions.
func (s *Set) Count() int {
	return len(s.regions)
}

// IsMulti returns true if there is more than one region.
func (s *Set) IsMulti() bool {
	return len(s.regions) > 1
}

// Main returns the main region.
func (s *Set) Main() Region {
	return s.regions[s.main]
}

// MainIndex returns the index of the main region.
func (s *Set) MainIndex() int {
	return s.main
}

// Get returns the region at index i and whether it exists.
func (s *Set) Get(i int) (Region, bool) {
	if i < 0 || i >= len(s.regions) {
		return Region{}, false
	}
	return s.regions[i], true
}

// TotalLen returns the summed covered length of all regions.
func (s *Set) TotalLen() ByteOffset {
	var total ByteOffset
	for _, g := range s.regions {
		total += g.Len()
	}
	return total
}

// Ranges returns the covered half-open ranges in order, clamped to bufLen.
func (s *Set) Ranges(bufLen ByteOffset) []buffer.Range {
	out := make([]buffer.Range, len(s.regions))
	for i, g := range s.regions {
		out[i] = g.Range(bufLen)
	}
	return out
}

// sortRegions orders regions by covered start, cursor position breaking ties.
func sortRegions(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Start() != regions[j].Start() {
			return regions[i].Start() < regions[j].Start()
		}
		return regions[i].End() < regions[j].End()
	})
}

// mergeSorted merges overlapping neighbors in a sorted slice, tracking where
// the region at trackIdx ends up. The earlier region's direction wins a merge.
func mergeSorted(regions []Region, trackIdx int) ([]Region, int) {
	out := regions[:0]
	tracked := 0
	for i, g := range regions {
		if len(out) > 0 && out[len(out)-1].Overlaps(g) {
			out[len(out)-1] = out[len(out)-1].Merge(g)
		} else {
			out = append(out, g)
		}
		if i == trackIdx {
			tracked = len(out) - 1
		}
	}
	return out, tracked
}

// MapRegions applies f to every region in order and normalizes the result.
// f may return zero or more replacement regions; returning none for every
// region resets the set to a single point at 0. The main index follows the
// output of the old main region (its last produced region, or the merged
// region that absorbed it).
func (s *Set) MapRegions(f func(Region) []Region) *Set {
	var out []Region
	newMain := 0
	for i, g := range s.regions {
		produced := f(g)
		for _, ng := range produced {
			if len(out) > 0 && out[len(out)-1].Overlaps(ng) {
				out[len(out)-1] = out[len(out)-1].Merge(ng)
			} else {
				out = append(out, ng)
			}
		}
		if i == s.main && len(out) > 0 {
			newMain = len(out) - 1
		}
	}
	if len(out) == 0 {
		return NewSet()
	}
	// f is order-preserving for every command we dispatch, but a uniform
	// shift can still reorder equal offsets after clamping; restore the
	// invariant if needed.
	if !isSorted(out) {
		tracked := out[newMain]
		sortRegions(out)
		for i, g := range out {
			if g == tracked {
				newMain = i
				break
			}
		}
		out, newMain = mergeSorted(out, newMain)
	}
	return &Set{regions: out, main: newMain}
}

func isSorted(regions []Region) bool {
	for i := 1; i < len(regions); i++ {
		if regions[i].Start() < regions[i-1].Start() {
			return false
		}
	}
	return true
}

// MoveBy shifts every cursor by delta, clamped to [0, bufLen].
// Without extend each region collapses to its moved cursor.
func (s *Set) MoveBy(delta ByteOffset, extend bool, bufLen ByteOffset) *Set {
	return s.MapRegions(func(g Region) []Region {
		return []Region{g.MoveCursor(delta, extend, bufLen)}
	})
}

// JumpTo places every cursor at the same absolute target.
func (s *Set) JumpTo(target ByteOffset, extend bool, bufLen ByteOffset) *Set {
	return s.MapRegions(func(g Region) []Region {
		return []Region{g.CursorTo(target, extend, bufLen)}
	})
}

// JumpEach places every cursor at a per-region target.
func (s *Set) JumpEach(target func(Region) ByteOffset, extend bool, bufLen ByteOffset) *Set {
	return s.MapRegions(func(g Region) []Region {
		return []Region{g.CursorTo(target(g), extend, bufLen)}
	})
}

// Collapse reduces every region to a point at its cursor.
func (s *Set) Collapse() *Set {
	return s.MapRegions(func(g Region) []Region {
		return []Region{g.Collapse()}
	})
}

// SwapEnds flips anchor and cursor in every region.
func (s *Set) SwapEnds() *Set {
	out := make([]Region, len(s.regions))
	for i, g := range s.regions {
		out[i] = g.SwapEnds()
	}
	return &Set{regions: out, main: s.main}
}

// SelectAll replaces the set with one region covering the whole buffer.
func (s *Set) SelectAll(bufLen ByteOffset) *Set {
	if bufLen <= 0 {
		return NewSet()
	}
	return &Set{regions: []Region{NewRegion(0, bufLen - 1)}}
}

// KeepOnlyMain replaces the set with just the main region.
func (s *Set) KeepOnlyMain() *Set {
	return &Set{regions: []Region{s.Main()}}
}

// KeepOnly replaces the set with just the region at index i (clamped).
func (s *Set) KeepOnly(i int) *Set {
	i = s.clampIndex(i)
	return &Set{regions: []Region{s.regions[i]}}
}

// DropMain removes the main region; the main index clamps to the remaining
// regions. Fails with ErrEmptySelection (and no change) on the last region.
func (s *Set) DropMain() (*Set, error) {
	return s.Drop(s.main)
}

// Drop removes the region at index i (clamped).
func (s *Set) Drop(i int) (*Set, error) {
	if len(s.regions) <= 1 {
		return s, ErrEmptySelection
	}
	i = s.clampIndex(i)

	out := make([]Region, 0, len(s.regions)-1)
	out = append(out, s.regions[:i]...)
	out = append(out, s.regions[i+1:]...)

	newMain := s.main
	if i < newMain {
		newMain--
	}
	if newMain >= len(out) {
		newMain = len(out) - 1
	}
	return &Set{regions: out, main: newMain}, nil
}

// WithMain returns the set with the main index set to i (clamped).
func (s *Set) WithMain(i int) *Set {
	return &Set{regions: s.regions, main: s.clampIndex(i)}
}

// CycleMain advances the main index circularly by n steps (negative for
// backward).
func (s *Set) CycleMain(n int) *Set {
	count := len(s.regions)
	m := (s.main + n) % count
	if m < 0 {
		m += count
	}
	return &Set{regions: s.regions, main: m}
}

func (s *Set) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.regions) {
		return len(s.regions) - 1
	}
	return i
}

// TransformThrough maps every region through a sorted edit batch, merging
// regions that the edits collapse together. assocAfter controls whether
// offsets land after bytes inserted at their position.
func (s *Set) TransformThrough(edits []buffer.Edit, assocAfter bool) *Set {
	return s.MapRegions(func(g Region) []Region {
		anchor := buffer.TransformOffset(edits, g.Anchor, assocAfter)
		cursor := buffer.TransformOffset(edits, g.Cursor, assocAfter)
		return []Region{{Anchor: anchor, Cursor: cursor}}
	})
}

// Validate checks the set invariants. Only tests should need this.
func (s *Set) Validate() error {
	if len(s.regions) == 0 {
		return errors.New("selection set is empty")
	}
	if s.main < 0 || s.main >= len(s.regions) {
		return errors.New("main index out of range")
	}
	for i := 1; i < len(s.regions); i++ {
		if s.regions[i].Start() < s.regions[i-1].Start() {
			return errors.New("regions not sorted")
		}
		if s.regions[i-1].Overlaps(s.regions[i]) {
			return errors.New("regions overlap")
		}
	}
	return nil
}
