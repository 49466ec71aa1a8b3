package bitset

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	bbs "github.com/bits-and-blooms/bitset"
)

// WordBits is the width of one storage word.
const WordBits = 64

// Locate maps index to its word position and the bit mask inside that word.
func Locate(index uint32) (word int, mask uint64) {
	return int(index >> 6), uint64(1) << (index & (WordBits - 1))
}

// WordsFor returns the number of words needed for count indices.
func WordsFor(count int) int {
	return (count + WordBits - 1) / WordBits
}

// CapacityError reports a bitset that is smaller than the index space it is
// used for.
type CapacityError struct {
	Need int
	Have int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("bitset holds %d indices, need %d", e.Have, e.Need)
}

// BitSet is a fixed-size bitset with dirty-word tracking.
type BitSet struct {
	words []uint64
	count int

	// dirty holds indices of words that became non-zero since the last
	// ClearAll. Once it outgrows dirtyLimit, overflow is set and ClearAll
	// falls back to zeroing every word.
	dirty      []uint32
	dirtyLimit int
	overflow   bool
}

// New returns a zeroed bitset for count indices.
func New(count int) *BitSet {
	if count < 0 {
		count = 0
	}
	n := WordsFor(count)
	limit := n / 8
	return &BitSet{
		words:      make([]uint64, n),
		count:      count,
		dirty:      make([]uint32, 0, min(limit, 128)),
		dirtyLimit: limit,
	}
}

// Len returns the number of indices the bitset was allocated for.
func (b *BitSet) Len() int { return b.count }

// Require returns a *CapacityError when the bitset cannot hold count indices.
func (b *BitSet) Require(count int) error {
	if b.count < count {
		return &CapacityError{Need: count, Have: b.count}
	}
	return nil
}

// Mark sets bit index. The caller must keep index below Len.
func (b *BitSet) Mark(index uint32) {
	w, mask := Locate(index)
	old := b.words[w]
	if old&mask != 0 {
		return
	}
	if old == 0 {
		b.touch(w)
	}
	b.words[w] = old | mask
}

// TestAndMark sets bit index and reports whether it was already set.
func (b *BitSet) TestAndMark(index uint32) bool {
	w, mask := Locate(index)
	old := b.words[w]
	if old&mask != 0 {
		return true
	}
	if old == 0 {
		b.touch(w)
	}
	b.words[w] = old | mask
	return false
}

// IsSet reports whether bit index is set. Indices beyond Len report false.
func (b *BitSet) IsSet(index uint32) bool {
	w, mask := Locate(index)
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&mask != 0
}

// Unmark clears bit index.
func (b *BitSet) Unmark(index uint32) {
	w, mask := Locate(index)
	b.words[w] &^= mask
}

func (b *BitSet) touch(w int) {
	if b.overflow {
		return
	}
	if len(b.dirty) >= b.dirtyLimit {
		b.overflow = true
		b.dirty = b.dirty[:0]
		return
	}
	b.dirty = append(b.dirty, uint32(w))
}

// ClearAll resets every bit to zero.
func (b *BitSet) ClearAll() {
	if b.overflow {
		clear(b.words)
		b.overflow = false
	} else {
		for _, w := range b.dirty {
			b.words[w] = 0
		}
	}
	b.dirty = b.dirty[:0]
}

// IsClear reports whether no bit is set. It scans every word.
func (b *BitSet) IsClear() bool {
	return bbs.From(b.words).None()
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	return int(bbs.From(b.words).Count())
}

// Each calls fn for every set index in ascending order until fn returns false.
func (b *BitSet) Each(fn func(index uint32) bool) {
	view := bbs.From(b.words)
	for i, ok := view.NextSet(0); ok; i, ok = view.NextSet(i + 1) {
		if i > math.MaxUint32 || !fn(uint32(i)) {
			return
		}
	}
}

// ToRoaring copies the set indices into a new roaring bitmap.
func (b *BitSet) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	b.Each(func(index uint32) bool {
		rb.Add(index)
		return true
	})
	return rb
}
