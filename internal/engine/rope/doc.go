// Package rope provides an immutable rope data structure for efficient
// byte-sequence storage and manipulation.
//
// A rope is a balanced tree where leaf nodes contain byte chunks and internal
// nodes store aggregated sizes. This implementation uses a B+ tree variant for
// better cache locality and worst-case performance.
//
// Key features:
//   - O(log n) splice, slice, and access operations
//   - Immutable operations return new ropes; originals are never modified
//   - Copy-on-write structural sharing makes versioning and undo cheap
//   - Thread-safe for concurrent read access
//
// Basic usage:
//
//	r := rope.FromBytes([]byte{0xde, 0xad, 0xbe, 0xef})
//	r = r.Insert(2, []byte{0x00})
//	r = r.Delete(0, 1)
//	data := r.Bytes()
//
// The rope is designed to handle files from bytes to gigabytes while keeping
// random access and modification sub-linear in total length.
package rope
