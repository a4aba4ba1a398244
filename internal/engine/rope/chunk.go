package rope

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset int64

// Chunk size constants control the granularity of byte storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 512

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 1024

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded byte run stored in leaf nodes.
// Chunks are immutable once created; the backing slice must not be
// modified after being handed to NewChunk.
type Chunk struct {
	data []byte
}

// NewChunk creates a chunk that takes ownership of the given bytes.
func NewChunk(data []byte) Chunk {
	return Chunk{data: data}
}

// NewChunkCopy creates a chunk from a private copy of the given bytes.
func NewChunkCopy(data []byte) Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return Chunk{data: owned}
}

// Bytes returns the chunk's contents. Callers must not modify it.
func (c Chunk) Bytes() []byte {
	return c.data
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no bytes.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at a byte offset, returning two chunks.
// Both halves share the original backing array.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}

	return Chunk{data: c.data[:offset:offset]}, Chunk{data: c.data[offset:]}
}

// splitIntoChunks divides data into chunks of roughly TargetChunkSize.
// The input is copied so the rope never aliases caller-owned memory.
func splitIntoChunks(data []byte) []Chunk {
	if len(data) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, len(data)/TargetChunkSize+1)
	for len(data) > 0 {
		n := TargetChunkSize
		if n > len(data) {
			n = len(data)
		}
		// Avoid a tiny trailing chunk: split the remainder evenly.
		if rem := len(data) - n; rem > 0 && rem < MinChunkSize {
			n = (len(data) + 1) / 2
		}
		chunks = append(chunks, NewChunkCopy(data[:n]))
		data = data[n:]
	}
	return chunks
}
