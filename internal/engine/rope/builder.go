package rope

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the tree structure when Build() is called.
// The zero value is ready to use.
type Builder struct {
	chunks   []Chunk
	buffer   []byte
	totalLen int
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{
		chunks: make([]Chunk, 0, 64),
	}
}

// Write appends bytes to the builder. Implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.totalLen += len(p)
	b.buffer = append(b.buffer, p...)

	// Flush to chunks once the buffer is large enough
	if len(b.buffer) >= MaxChunkSize*2 {
		b.flushBuffer()
	}
	return len(p), nil
}

// WriteByte appends a single byte. Implements io.ByteWriter.
func (b *Builder) WriteByte(c byte) error {
	b.totalLen++
	b.buffer = append(b.buffer, c)
	if len(b.buffer) >= MaxChunkSize*2 {
		b.flushBuffer()
	}
	return nil
}

// flushBuffer converts the buffered bytes to chunks.
func (b *Builder) flushBuffer() {
	if len(b.buffer) == 0 {
		return
	}

	b.chunks = append(b.chunks, splitIntoChunks(b.buffer)...)
	b.buffer = b.buffer[:0]
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer = b.buffer[:0]
	b.totalLen = 0
}

// Build constructs the rope from the written bytes.
// The builder is reset afterwards.
func (b *Builder) Build() Rope {
	b.flushBuffer()
	r := buildFromChunks(b.chunks)
	b.Reset()
	return r
}
