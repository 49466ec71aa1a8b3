package bitset

import "sync"

// Pool recycles bitsets of one size. Get returns a cleared bitset and Put
// clears it before it becomes available again, so two borrowers never observe
// each other's bits.
type Pool struct {
	count int
	pool  sync.Pool
}

// NewPool returns a pool of bitsets sized for count indices.
func NewPool(count int) *Pool {
	p := &Pool{count: count}
	p.pool.New = func() any {
		return New(count)
	}
	return p
}

// Len returns the index capacity of pooled bitsets.
func (p *Pool) Len() int { return p.count }

// Get retrieves a cleared bitset. Call Put when done.
func (p *Pool) Get() *BitSet {
	return p.pool.Get().(*BitSet)
}

// Put clears b and returns it to the pool. Bitsets of another size are dropped.
func (p *Pool) Put(b *BitSet) {
	if b == nil || b.count != p.count {
		return
	}
	b.ClearAll()
	p.pool.Put(b)
}

// With borrows a bitset for the duration of fn.
func (p *Pool) With(fn func(b *BitSet) error) error {
	b := p.Get()
	defer p.Put(b)
	return fn(b)
}
