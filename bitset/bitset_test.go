package bitset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		index uint32
		word  int
		mask  uint64
	}{
		{0, 0, 1},
		{63, 0, 1 << 63},
		{64, 1, 1},
		{130, 2, 1 << 2},
	}
	for _, tt := range tests {
		w, m := Locate(tt.index)
		assert.Equal(t, tt.word, w, "index %d", tt.index)
		assert.Equal(t, tt.mask, m, "index %d", tt.index)
	}
	assert.Equal(t, 0, WordsFor(0))
	assert.Equal(t, 1, WordsFor(64))
	assert.Equal(t, 2, WordsFor(65))
}

func TestMarkAndClear(t *testing.T) {
	b := New(200)
	require.Equal(t, 200, b.Len())
	require.True(t, b.IsClear())

	b.Mark(3)
	b.Mark(64)
	b.Mark(199)
	b.Mark(3)
	assert.True(t, b.IsSet(3))
	assert.True(t, b.IsSet(64))
	assert.True(t, b.IsSet(199))
	assert.False(t, b.IsSet(4))
	assert.False(t, b.IsSet(100000))
	assert.Equal(t, 3, b.Count())

	assert.True(t, b.TestAndMark(64))
	assert.False(t, b.TestAndMark(65))
	assert.Equal(t, 4, b.Count())

	b.Unmark(65)
	assert.False(t, b.IsSet(65))

	b.ClearAll()
	assert.True(t, b.IsClear())
	assert.Equal(t, 0, b.Count())
}

func TestClearAllAfterOverflow(t *testing.T) {
	b := New(64 * 64)
	for i := uint32(0); i < 64*64; i += 64 {
		b.Mark(i)
	}
	require.True(t, b.overflow)
	b.ClearAll()
	assert.True(t, b.IsClear())
	assert.False(t, b.overflow)

	// Dirty tracking resumes after a full clear.
	b.Mark(70)
	assert.False(t, b.overflow)
	b.ClearAll()
	assert.True(t, b.IsClear())
}

func TestClearAllAfterUnmarkAndRemark(t *testing.T) {
	b := New(64 * 64)
	b.Mark(5)
	b.Unmark(5)
	b.Mark(6)
	b.ClearAll()
	assert.True(t, b.IsClear())
}

func TestRequire(t *testing.T) {
	b := New(10)
	assert.NoError(t, b.Require(10))
	err := b.Require(11)
	var ce *CapacityError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 11, ce.Need)
	assert.Equal(t, 10, ce.Have)
	assert.Contains(t, err.Error(), "need 11")
}

func TestEachAndRoaring(t *testing.T) {
	b := New(1000)
	for _, i := range []uint32{999, 1, 500, 64} {
		b.Mark(i)
	}

	var got []uint32
	b.Each(func(i uint32) bool {
		got = append(got, i)
		return true
	})
	assert.Equal(t, []uint32{1, 64, 500, 999}, got)

	var first []uint32
	b.Each(func(i uint32) bool {
		first = append(first, i)
		return false
	})
	assert.Equal(t, []uint32{1}, first)

	rb := b.ToRoaring()
	assert.Equal(t, uint64(4), rb.GetCardinality())
	assert.True(t, rb.Contains(500))
	assert.Equal(t, got, rb.ToArray())
}

func TestPool(t *testing.T) {
	p := NewPool(128)
	assert.Equal(t, 128, p.Len())

	b := p.Get()
	require.Equal(t, 128, b.Len())
	b.Mark(7)
	p.Put(b)
	assert.True(t, b.IsClear())

	b2 := p.Get()
	assert.True(t, b2.IsClear())
	p.Put(b2)

	// Foreign sizes are dropped silently.
	p.Put(New(3))
	p.Put(nil)

	sentinel := errors.New("boom")
	var borrowed *BitSet
	err := p.With(func(b *BitSet) error {
		borrowed = b
		b.Mark(100)
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, borrowed.IsClear())
}

func BenchmarkMarkClear(b *testing.B) {
	bs := New(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := uint32(0); j < 1024; j++ {
			bs.Mark(j * 97)
		}
		bs.ClearAll()
	}
}
