package arena

import "errors"

// ErrMaxChunksExceeded is returned when a slab would need more handles than
// fit in 32 bits.
var ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")

const (
	// DefaultChunkLen is the number of elements per chunk.
	DefaultChunkLen = 1024
	// MaxChunks limits the handle space to 32 bits with the default chunk length.
	MaxChunks = 1 << 22
)

// Slab is a chunked typed allocator. Elements keep their address until Reset.
type Slab[T any] struct {
	chunks   [][]T
	chunkLen int
	used     int // elements handed out in total
}

// NewSlab returns a slab that grows in chunks of chunkLen elements.
// chunkLen <= 0 selects DefaultChunkLen.
func NewSlab[T any](chunkLen int) *Slab[T] {
	if chunkLen <= 0 {
		chunkLen = DefaultChunkLen
	}
	return &Slab[T]{chunkLen: chunkLen}
}

// Alloc returns a zeroed element and its handle.
func (s *Slab[T]) Alloc() (uint32, *T, error) {
	c, i := s.used/s.chunkLen, s.used%s.chunkLen
	if c == len(s.chunks) {
		if c >= MaxChunks {
			return 0, nil, ErrMaxChunksExceeded
		}
		s.chunks = append(s.chunks, make([]T, s.chunkLen))
	}
	p := &s.chunks[c][i]
	var zero T
	*p = zero
	h := uint32(s.used)
	s.used++
	return h, p, nil
}

// Get returns the element for handle h. h must come from Alloc since the
// last Reset.
func (s *Slab[T]) Get(h uint32) *T {
	return &s.chunks[int(h)/s.chunkLen][int(h)%s.chunkLen]
}

// Len returns the number of live elements.
func (s *Slab[T]) Len() int { return s.used }

// Chunks returns the number of chunks currently held.
func (s *Slab[T]) Chunks() int { return len(s.chunks) }

// Reset releases all elements. Chunks are retained for reuse.
func (s *Slab[T]) Reset() {
	s.used = 0
}

// Free releases all elements and drops the chunks.
func (s *Slab[T]) Free() {
	s.used = 0
	s.chunks = nil
}
