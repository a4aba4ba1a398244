package rope

import "io"

// chunkIterFrame represents a position in the tree traversal.
type chunkIterFrame struct {
	node     *Node
	childIdx int // Next child index to visit (for internal nodes)
	chunkIdx int // Next chunk index to visit (for leaf nodes)
}

// ChunkIterator iterates over chunks in a rope, left to right.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart ByteOffset
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false when iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
		return it.findNextChunk()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			frame.chunkIdx++
		}
	}
	it.chunkStart += ByteOffset(it.chunk.Len())
	return it.findNextChunk()
}

// findNextChunk descends until it lands on an unvisited chunk.
func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]

		if frame.node.IsLeaf() {
			// Skip empty chunks
			for frame.chunkIdx < len(frame.node.chunks) {
				chunk := frame.node.chunks[frame.chunkIdx]
				if !chunk.IsEmpty() {
					it.chunk = chunk
					return true
				}
				frame.chunkIdx++
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if frame.childIdx < len(frame.node.children) {
			child := frame.node.children[frame.childIdx]
			frame.childIdx++
			it.stack = append(it.stack, chunkIterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}

	it.chunk = Chunk{}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Start returns the absolute byte offset of the current chunk.
func (it *ChunkIterator) Start() ByteOffset {
	return it.chunkStart
}

// Reader returns an io.Reader over the rope's full contents.
func (r Rope) Reader() *Reader {
	return r.ReaderAt(0)
}

// ReaderAt returns an io.Reader starting at the given byte offset.
func (r Rope) ReaderAt(offset ByteOffset) *Reader {
	if offset < 0 {
		offset = 0
	}
	return &Reader{rope: r, offset: offset}
}

// Reader reads rope contents sequentially. Implements io.Reader.
type Reader struct {
	rope   Rope
	offset ByteOffset
	iter   *ChunkIterator
	chunk  []byte // Remainder of the current chunk
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		if len(rd.chunk) == 0 {
			if !rd.advance() {
				if total == 0 {
					return 0, io.EOF
				}
				return total, nil
			}
		}
		n := copy(p[total:], rd.chunk)
		rd.chunk = rd.chunk[n:]
		rd.offset += ByteOffset(n)
		total += n
	}
	return total, nil
}

// advance loads the next chunk containing rd.offset.
func (rd *Reader) advance() bool {
	if rd.iter == nil {
		rd.iter = rd.rope.Chunks()
		for rd.iter.Next() {
			start := rd.iter.Start()
			end := start + ByteOffset(rd.iter.Chunk().Len())
			if end > rd.offset {
				rd.chunk = rd.iter.Chunk().Bytes()[rd.offset-start:]
				return true
			}
		}
		return false
	}

	if rd.iter.Next() {
		rd.chunk = rd.iter.Chunk().Bytes()
		return true
	}
	return false
}
