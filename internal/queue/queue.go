// Package queue provides the priority front used by geodesic marching.
package queue

// Item is one frontier entry. Min is the shorter and Max the longer of the
// two endpoint distances of the frontier edge.
type Item struct {
	Handle uint32 // Handle refers to the edge record in the caller's slab.
	Min    float64
	Max    float64
}

// Less orders items by shorter distance, then longer distance, then handle.
// Handles grow with insertion, so equal keys pop first-in first-out.
func Less(a, b Item) bool {
	if a.Min != b.Min {
		return a.Min < b.Min
	}
	if a.Max != b.Max {
		return a.Max < b.Max
	}
	return a.Handle < b.Handle
}

// Front is a value-based binary min-heap of Items.
type Front struct {
	items []Item
}

// New returns an empty front with room for capacity items.
func New(capacity int) *Front {
	return &Front{items: make([]Item, 0, capacity)}
}

// Len returns the number of queued items.
func (f *Front) Len() int { return len(f.items) }

// Top returns the smallest item without removing it.
func (f *Front) Top() (Item, bool) {
	if len(f.items) == 0 {
		return Item{}, false
	}
	return f.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (f *Front) Push(item Item) {
	f.items = append(f.items, item)
	f.siftUp(len(f.items) - 1)
}

// Pop removes and returns the smallest item.
func (f *Front) Pop() (Item, bool) {
	n := len(f.items)
	if n == 0 {
		return Item{}, false
	}
	root := f.items[0]
	last := f.items[n-1]
	f.items = f.items[:n-1]
	if n-1 > 0 {
		f.items[0] = last
		f.siftDown(0)
	}
	return root, true
}

// Reset empties the front, keeping its storage.
func (f *Front) Reset() {
	f.items = f.items[:0]
}

func (f *Front) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !Less(f.items[i], f.items[p]) {
			return
		}
		f.items[i], f.items[p] = f.items[p], f.items[i]
		i = p
	}
}

func (f *Front) siftDown(i int) {
	n := len(f.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && Less(f.items[r], f.items[l]) {
			best = r
		}
		if !Less(f.items[best], f.items[i]) {
			return
		}
		f.items[i], f.items[best] = f.items[best], f.items[i]
		i = best
	}
}
