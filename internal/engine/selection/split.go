package selection

import (
	"hexad/internal/engine/buffer"
	"hexad/internal/engine/pattern"
	"hexad/internal/engine/rope"
)

// SplitWidth decomposes every region into pieces of the given byte width,
// in order; the last piece of a region may be shorter. A region of length L
// yields ceil(L/width) pieces covering exactly its original range. Pieces
// inherit the region's direction. A width below 1 is treated as 1.
func (s *Set) SplitWidth(width ByteOffset) *Set {
	if width < 1 {
		width = 1
	}
	return s.MapRegions(func(g Region) []Region {
		backward := g.IsBackward()
		start, end := g.Start(), g.End()

		out := make([]Region, 0, (end-start)/width+1)
		for pos := start; pos <= end; pos += width {
			pieceEnd := pos + width - 1
			if pieceEnd > end {
				pieceEnd = end
			}
			out = append(out, NewRegion(pos, pieceEnd).WithDirection(backward))
		}
		return out
	})
}

// SplitNull decomposes every region into the maximal runs between null
// bytes, the delimiters themselves excluded. Null runs shorter than minRun
// bytes do not count as delimiters and stay inside their piece. Regions
// that contain only delimiter nulls dissolve; if nothing at all remains the
// operation fails with ErrEmptySelection and the set is unchanged.
func (s *Set) SplitNull(rp rope.Rope, minRun ByteOffset) (*Set, error) {
	if minRun < 1 {
		minRun = 1
	}
	nulls := pattern.NullRun(1)
	bufLen := rp.Len()

	produced := false
	result := s.MapRegions(func(g Region) []Region {
		backward := g.IsBackward()
		start, end := g.Start(), g.End()

		// Coalesce single-null matches into maximal runs, dropping runs
		// below the delimiter threshold.
		var runs []buffer.Range
		iter := pattern.FindAll(rp, nulls, g.Range(bufLen))
		for {
			m, ok := iter.Next()
			if !ok {
				break
			}
			if n := len(runs); n > 0 && runs[n-1].End == m.Start {
				runs[n-1].End = m.End
			} else {
				runs = append(runs, m)
			}
		}

		var out []Region
		pieceStart := start
		for _, run := range runs {
			if run.Len() < minRun {
				continue
			}
			if run.Start > pieceStart {
				out = append(out, NewRegion(pieceStart, run.Start-1).WithDirection(backward))
			}
			pieceStart = run.End
		}
		if pieceStart <= end && pieceStart < bufLen {
			out = append(out, NewRegion(pieceStart, end).WithDirection(backward))
		}
		if len(out) > 0 {
			produced = true
		}
		return out
	})

	if !produced {
		return s, ErrEmptySelection
	}
	return result, nil
}

// SplitPattern replaces every region with the pattern's match ranges
// restricted to its covered bytes, preserving direction. Fails with
// ErrNoMatch (set unchanged) when no region contains a match.
func (s *Set) SplitPattern(rp rope.Rope, p pattern.Pattern) (*Set, error) {
	if p.IsEmpty() {
		return s, ErrNoMatch
	}
	bufLen := rp.Len()

	matched := false
	result := s.MapRegions(func(g Region) []Region {
		backward := g.IsBackward()

		var out []Region
		iter := pattern.FindAll(rp, p, g.Range(bufLen))
		for {
			m, ok := iter.Next()
			if !ok {
				break
			}
			out = append(out, FromRange(m).WithDirection(backward))
		}
		if len(out) > 0 {
			matched = true
		}
		return out
	})

	if !matched {
		return s, ErrNoMatch
	}
	return result, nil
}

// SelectMatching replaces the whole set with the pattern's match ranges over
// the given search ranges (typically the union of current selections or the
// whole buffer). Fails with ErrNoMatch (set unchanged) on zero matches.
func SelectMatching(rp rope.Rope, p pattern.Pattern, searchRanges []buffer.Range) (*Set, error) {
	if p.IsEmpty() {
		return nil, ErrNoMatch
	}

	var regions []Region
	for _, r := range searchRanges {
		iter := pattern.FindAll(rp, p, r)
		for {
			m, ok := iter.Next()
			if !ok {
				break
			}
			regions = append(regions, FromRange(m))
		}
	}

	if len(regions) == 0 {
		return nil, ErrNoMatch
	}
	return FromRegions(regions), nil
}
