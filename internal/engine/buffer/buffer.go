package buffer

import (
	"errors"
	"io"

	"hexad/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds reports a range that exceeds the buffer length.
	// Public editor operations clamp instead; seeing this error escape
	// indicates a programming error in a caller.
	ErrOutOfBounds = errors.New("offset out of range")

	// ErrEditsOverlap reports an edit batch with overlapping ranges.
	ErrEditsOverlap = errors.New("edits overlap")
)

// Revision identifies one immutable buffer version.
type Revision uint64

// Buffer is one immutable version of a byte sequence.
// The zero value is an empty buffer.
type Buffer struct {
	rope rope.Rope
	rev  Revision
}

// New creates an empty buffer.
func New() Buffer {
	return Buffer{rope: rope.New()}
}

// FromBytes creates a buffer with the given initial content.
func FromBytes(data []byte) Buffer {
	return Buffer{rope: rope.FromBytes(data)}
}

// FromReader creates a buffer by consuming a reader.
func FromReader(r io.Reader) (Buffer, error) {
	rp, err := rope.FromReader(r)
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{rope: rp}, nil
}

// FromRope wraps an existing rope version in a buffer.
func FromRope(rp rope.Rope, rev Revision) Buffer {
	return Buffer{rope: rp, rev: rev}
}

// Rope returns the underlying rope version.
func (b Buffer) Rope() rope.Rope {
	return b.rope
}

// Revision returns the buffer's version number.
func (b Buffer) Revision() Revision {
	return b.rev
}

// Len returns the total byte length.
func (b Buffer) Len() ByteOffset {
	return b.rope.Len()
}

// IsEmpty returns true if the buffer contains no bytes.
func (b Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// Slice returns the bytes in r. Fails with ErrOutOfBounds if the range
// exceeds the buffer length.
func (b Buffer) Slice(r Range) ([]byte, error) {
	if !r.IsValid() || r.End > b.Len() {
		return nil, ErrOutOfBounds
	}
	return b.rope.Slice(r.Start, r.End), nil
}

// SliceClamped returns the bytes in r clamped to the buffer length.
func (b Buffer) SliceClamped(r Range) []byte {
	c := r.Clamp(b.Len())
	return b.rope.Slice(c.Start, c.End)
}

// ByteAt returns the byte at the given offset.
func (b Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	return b.rope.ByteAt(offset)
}

// Bytes returns the full contents. Use sparingly for large buffers.
func (b Buffer) Bytes() []byte {
	return b.rope.Bytes()
}

// Reader returns an io.Reader over the buffer contents.
func (b Buffer) Reader() io.Reader {
	return b.rope.Reader()
}

// WriteTo writes the full contents to w. Implements io.WriterTo.
func (b Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.rope.WriteTo(w)
}

// Splice produces a new buffer version with r replaced by data.
// The original version is never mutated.
func (b Buffer) Splice(r Range, data []byte) (Buffer, error) {
	if !r.IsValid() || r.End > b.Len() {
		return b, ErrOutOfBounds
	}
	return Buffer{
		rope: b.rope.Splice(r.Start, r.End, data),
		rev:  b.rev + 1,
	}, nil
}

// ApplyEdits applies a batch of edits atomically, producing one new version.
// The batch is sorted by start offset; it must be non-overlapping and in
// bounds, otherwise the buffer is returned unchanged with an error.
//
// Edits are applied back to front so earlier ranges need no adjustment.
func (b Buffer) ApplyEdits(edits []Edit) (Buffer, error) {
	if len(edits) == 0 {
		return b, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sortEdits(sorted)

	if err := validateEdits(sorted, b.Len()); err != nil {
		return b, err
	}

	rp := b.rope
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		rp = rp.Splice(e.Range.Start, e.Range.End, e.New)
	}

	return Buffer{rope: rp, rev: b.rev + 1}, nil
}

// Equals reports whether two buffer versions hold the same bytes.
func (b Buffer) Equals(other Buffer) bool {
	return b.rope.Equals(other.rope)
}
